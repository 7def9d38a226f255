// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package featureuc_test

import (
	"testing"

	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/featureuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pos = model.Coordinate{Lat: 16.0544, Lng: 108.2022}

func feature(id string, t model.FeatureType, dist float64) model.MapFeature {
	c := geo.Offset(pos, 30, dist)
	return model.MapFeature{ID: id, Lat: c.Lat, Lng: c.Lng, Type: t}
}

func newUseCase(t *testing.T, opts ...featureuc.Option) *featureuc.UseCase {
	uc, err := featureuc.New(opts...)
	require.NoError(t, err)
	return uc
}

func TestNearestCutoff(t *testing.T) {
	uc := newUseCase(t)
	assert.Nil(t, uc.Nearest(nil, pos))
	assert.Nil(t, uc.Nearest([]model.MapFeature{
		feature("far", model.FeatureTypeCamera, 1001),
	}, pos), "1001m is excluded")

	got := uc.Nearest([]model.MapFeature{
		feature("far", model.FeatureTypeCamera, 1001),
		feature("edge", model.FeatureTypeTrafficLight, 999),
	}, pos)
	require.NotNil(t, got)
	assert.Equal(t, "edge", got.ID)
	assert.InDelta(t, 999, got.Distance, 1e-6)
}

func TestNearestIgnoresType(t *testing.T) {
	uc := newUseCase(t)
	got := uc.Nearest([]model.MapFeature{
		feature("light", model.FeatureTypeTrafficLight, 400),
		feature("cam", model.FeatureTypeCamera, 120),
		feature("light2", model.FeatureTypeTrafficLight, 700),
	}, pos)
	require.NotNil(t, got)
	assert.Equal(t, "cam", got.ID)
	assert.Equal(t, model.FeatureTypeCamera, got.Type)
}

func TestApproachFiresOncePerApproach(t *testing.T) {
	uc := newUseCase(t)
	var g featureuc.AlertGate
	var fired []float64
	for _, d := range []float64{
		800, 500, 301, 299, 280, 260, 200, 50, 10, // approaching
		60, 240, 270, 310, 600, // receding after passing it
	} {
		var ok bool
		g, ok = uc.Observe(g, &model.NearestFeature{ID: "cam", Distance: d})
		if ok {
			fired = append(fired, d)
		}
	}
	assert.Equal(t, []float64{299}, fired)
}

func TestApproachRearmsOnNewFeature(t *testing.T) {
	uc := newUseCase(t)
	g, ok := uc.Observe(featureuc.AlertGate{}, &model.NearestFeature{ID: "a", Distance: 290})
	assert.True(t, ok)
	g, ok = uc.Observe(g, &model.NearestFeature{ID: "a", Distance: 255})
	assert.False(t, ok)
	g, ok = uc.Observe(g, &model.NearestFeature{ID: "b", Distance: 270})
	assert.True(t, ok, "another feature is announced")
	g, ok = uc.Observe(g, nil)
	assert.False(t, ok)
	assert.Equal(t, featureuc.AlertGate{}, g)
}

func TestApproachBandEdgesAreInclusive(t *testing.T) {
	uc := newUseCase(t)
	_, ok := uc.Observe(featureuc.AlertGate{}, &model.NearestFeature{ID: "x", Distance: 300})
	assert.True(t, ok)
	_, ok = uc.Observe(featureuc.AlertGate{}, &model.NearestFeature{ID: "x", Distance: 250})
	assert.True(t, ok)
	_, ok = uc.Observe(featureuc.AlertGate{}, &model.NearestFeature{ID: "x", Distance: 249.9})
	assert.False(t, ok, "starting closer than the band is not announced")
}

func TestOptions(t *testing.T) {
	uc := newUseCase(t, featureuc.WithCutoff(500), featureuc.WithAlertBand(100, 150))
	assert.Nil(t, uc.Nearest([]model.MapFeature{
		feature("a", model.FeatureTypeCamera, 600),
	}, pos))
	_, ok := uc.Observe(featureuc.AlertGate{}, &model.NearestFeature{ID: "a", Distance: 120})
	assert.True(t, ok)

	_, err := featureuc.New(featureuc.WithAlertBand(300, 250))
	assert.Error(t, err)
	_, err = featureuc.New(featureuc.WithCutoff(-1))
	assert.Error(t, err)
}
