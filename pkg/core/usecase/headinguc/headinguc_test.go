// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package headinguc_test

import (
	"testing"

	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/headinguc"
	"github.com/momeni/navengine/pkg/core/usecase/routeuc"
	"github.com/stretchr/testify/assert"
)

var pos = model.Coordinate{Lat: 10.03, Lng: 105.77}

func TestLooksAheadTwoPoints(t *testing.T) {
	// east, then north: the target point is the corner's successor
	p := model.Path{
		pos,
		geo.Offset(pos, 90, 50),
		geo.Offset(geo.Offset(pos, 90, 50), 0, 50),
		geo.Offset(geo.Offset(pos, 90, 50), 0, 100),
	}
	rs := routeuc.Track(p, pos)
	got := headinguc.DisplayHeading(rs, true, pos, 200)
	assert.InDelta(t, geo.Bearing(pos, p[2]), got, 1e-9)
	assert.InDelta(t, 45, got, 0.1)
}

func TestShortRemainingPathUsesLastPoint(t *testing.T) {
	p := model.Path{pos, geo.Offset(pos, 180, 80)}
	rs := routeuc.Track(p, pos)
	assert.InDelta(t, 180, headinguc.DisplayHeading(rs, true, pos, 10), 1e-6)
}

func TestFallsBackToDeviceHeading(t *testing.T) {
	p := model.Path{pos, geo.Offset(pos, 90, 100)}
	atEnd := routeuc.Track(p, p[1])
	assert.Equal(t, 33.0, headinguc.DisplayHeading(atEnd, true, p[1], 33),
		"single remaining point")
	assert.Equal(t, 33.0, headinguc.DisplayHeading(routeuc.Start(p), false, pos, 33),
		"not navigating")
	assert.Equal(t, 33.0, headinguc.DisplayHeading(nil, true, pos, 33),
		"no route")
}

func TestViewModeCycle(t *testing.T) {
	vm := model.ViewModeNorthUp
	seen := []model.ViewMode{vm}
	for i := 0; i < 3; i++ {
		vm = vm.Next()
		seen = append(seen, vm)
	}
	assert.Equal(t, []model.ViewMode{
		model.ViewModeNorthUp, model.ViewModeHeadingUp,
		model.ViewModeOverview, model.ViewModeNorthUp,
	}, seen)
}
