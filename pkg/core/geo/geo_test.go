// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geo_test

import (
	"testing"

	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

var hanoi = model.Coordinate{Lat: 21.0285, Lng: 105.8542}

func TestDistance(t *testing.T) {
	hcm := model.Coordinate{Lat: 10.8231, Lng: 106.6297}
	assert.Zero(t, geo.Distance(hanoi, hanoi))
	d := geo.Distance(hanoi, hcm)
	assert.InDelta(t, 1137000, d, 3000, "Hanoi to Ho Chi Minh City")
	assert.Equal(t, d, geo.Distance(hcm, hanoi), "distance is symmetric")

	oneDegree := geo.Distance(
		model.Coordinate{Lat: 0, Lng: 0}, model.Coordinate{Lat: 1, Lng: 0},
	)
	assert.InDelta(t, 111194.9, oneDegree, 0.1)
}

func TestBearing(t *testing.T) {
	origin := model.Coordinate{}
	for _, tc := range []struct {
		name string
		to   model.Coordinate
		want float64
	}{
		{"north", model.Coordinate{Lat: 1}, 0},
		{"east", model.Coordinate{Lng: 1}, 90},
		{"south", model.Coordinate{Lat: -1}, 180},
		{"west", model.Coordinate{Lng: -1}, 270},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := geo.Bearing(origin, tc.to)
			assert.InDelta(t, tc.want, b, 1e-9)
			assert.GreaterOrEqual(t, b, 0.0)
			assert.Less(t, b, 360.0)
		})
	}
}

func TestAngleDiff(t *testing.T) {
	assert.Equal(t, 20.0, geo.AngleDiff(350, 10))
	assert.Equal(t, 20.0, geo.AngleDiff(10, 350))
	assert.Equal(t, 180.0, geo.AngleDiff(0, 180))
	assert.Equal(t, 0.0, geo.AngleDiff(720, 0))
	assert.Equal(t, 44.0, geo.AngleDiff(90, 46))
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, geo.PathLength(nil))
	assert.Zero(t, geo.PathLength(model.Path{hanoi}))
	p := model.Path{
		hanoi,
		geo.Offset(hanoi, 90, 100),
		geo.Offset(geo.Offset(hanoi, 90, 100), 90, 100),
	}
	assert.InDelta(t, 200, geo.PathLength(p), 1e-6)
}

func TestOffsetRoundTrip(t *testing.T) {
	for _, brng := range []float64{0, 45, 135, 270} {
		c := geo.Offset(hanoi, brng, 250)
		assert.InDelta(t, 250, geo.Distance(hanoi, c), 1e-6)
		assert.InDelta(t, brng, geo.Bearing(hanoi, c), 1e-3)
	}
}
