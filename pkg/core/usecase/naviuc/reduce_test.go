// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naviuc_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/featureuc"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = model.Coordinate{Lat: 10.7769, Lng: 106.7009}

func reducer(t *testing.T) naviuc.Reducer {
	fuc, err := featureuc.New()
	require.NoError(t, err)
	return naviuc.NewReducer(fuc, 30, 300)
}

func f64(v float64) *float64 {
	return &v
}

func sample(c model.Coordinate, speed, heading *float64) naviuc.LocationEvent {
	return naviuc.LocationEvent{Sample: model.LocationSample{
		Coordinate: c, Speed: speed, Heading: heading,
	}}
}

func eastPath(n int) model.Path {
	p := make(model.Path, 0, n)
	for i := 0; i < n; i++ {
		p = append(p, geo.Offset(start, 90, float64(i)*100))
	}
	return p
}

func kinds(ls []naviuc.Lookup) []naviuc.LookupKind {
	var ks []naviuc.LookupKind
	for _, l := range ls {
		ks = append(ks, l.Kind)
	}
	return ks
}

func TestLocationWithoutSession(t *testing.T) {
	r := reducer(t)
	s, ls := r.Reduce(naviuc.State{}, sample(start, f64(10), f64(45)))
	assert.Empty(t, ls, "no lookups without a session")
	require.NotNil(t, s.Position)
	assert.Equal(t, start, *s.Position)
	assert.Equal(t, model.GPSStatusLocked, s.GPS)
	assert.InDelta(t, 36, s.SpeedKmh, 1e-9)
	assert.Equal(t, 45.0, s.Display, "device heading is displayed")
}

func TestInputDegradationRetainsValues(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, sample(start, f64(10), f64(45)))
	next := geo.Offset(start, 0, 10)

	s, _ = r.Reduce(s, sample(next, nil, f64(math.NaN())))
	assert.Equal(t, 45.0, s.DeviceHeading)
	assert.InDelta(t, 36, s.SpeedKmh, 1e-9)
	assert.Equal(t, next, *s.Position)

	s, _ = r.Reduce(s, sample(next, f64(-3), nil))
	assert.Zero(t, s.SpeedKmh, "negative speed is clamped")

	nan := model.Coordinate{Lat: math.NaN(), Lng: 1}
	s2, ls := r.Reduce(s, sample(nan, f64(20), f64(90)))
	assert.Empty(t, ls)
	assert.Equal(t, s, s2, "a sample without a valid position is ignored")
}

func TestLookupGating(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{
		Session: uuid.New(), Path: eastPath(10),
	})
	gen := s.Generation

	s, ls := r.Reduce(s, sample(start, nil, f64(90)))
	assert.Equal(t, []naviuc.LookupKind{naviuc.LookupLimit, naviuc.LookupFeatures}, kinds(ls),
		"first sample triggers both lookups")
	assert.Equal(t, gen, ls[0].Generation)
	assert.Equal(t, 90.0, ls[0].Heading)

	s, ls = r.Reduce(s, sample(geo.Offset(start, 90, 50), nil, nil))
	assert.Empty(t, ls, "lookups are in flight")

	s, _ = r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: gen, Limit: model.KnownSpeedLimit(60, model.LimitSourceOSM, ""),
	})
	s, ls = r.Reduce(s, sample(geo.Offset(start, 90, 20), nil, nil))
	assert.Empty(t, ls, "moved only 20m since the limit anchor")

	s, ls = r.Reduce(s, sample(geo.Offset(start, 90, 31), nil, nil))
	assert.Equal(t, []naviuc.LookupKind{naviuc.LookupLimit}, kinds(ls))

	s, _ = r.Reduce(s, naviuc.FeaturesFetchedEvent{Generation: gen})
	_, ls = r.Reduce(s, sample(geo.Offset(start, 90, 301), nil, nil))
	assert.Equal(t, []naviuc.LookupKind{naviuc.LookupFeatures}, kinds(ls),
		"limit lookup is still in flight")
}

func TestStaleResultsAreDropped(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New()})
	s, ls := r.Reduce(s, sample(start, nil, nil))
	require.Len(t, ls, 2)
	old := ls[0].Generation

	s, _ = r.Reduce(s, naviuc.StopEvent{})
	s, _ = r.Reduce(s, naviuc.StartEvent{Session: uuid.New()})
	s2, _ := r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: old, Limit: model.KnownSpeedLimit(80, model.LimitSourceOSM, ""),
	})
	assert.Equal(t, s, s2)
	assert.False(t, s2.Limit.Known())
}

func TestLimitTransitions(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New()})
	gen := s.Generation
	resolve := func(s naviuc.State, l model.ResolvedSpeedLimit) naviuc.State {
		s, _ = r.Reduce(s, naviuc.LimitResolvedEvent{Generation: gen, Limit: l})
		return s
	}

	s = resolve(s, model.KnownSpeedLimit(80, model.LimitSourceRegistry, "Mai Chi Tho"))
	assert.Empty(t, s.Alerts)
	s = resolve(s, model.KnownSpeedLimit(100, model.LimitSourceOSM, ""))
	assert.Empty(t, s.Alerts, "raising the limit is not announced")
	s = resolve(s, model.KnownSpeedLimit(60, model.LimitSourceOSM, ""))
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, model.AlertSpeedLimitLowered, s.Alerts[0].Kind)
	assert.Equal(t, 60, *s.Alerts[0].SpeedLimit)

	s = resolve(s, model.UnknownSpeedLimit("Hem 12"))
	assert.False(t, s.Limit.Known(), "unknown replaces the known limit")
	assert.Equal(t, "Hem 12", s.Limit.RoadName)
	s = resolve(s, model.KnownSpeedLimit(40, model.LimitSourceOSM, ""))
	require.Len(t, s.Alerts, 2, "drop is detected across an unknown limit")
	assert.Equal(t, 40, *s.Alerts[1].SpeedLimit)
	s = resolve(s, model.UnknownSpeedLimit(""))
	s = resolve(s, model.KnownSpeedLimit(50, model.LimitSourceOSM, ""))
	assert.Len(t, s.Alerts, 2)

	s, _ = r.Reduce(s, naviuc.StopEvent{})
	s, _ = r.Reduce(s, naviuc.StartEvent{Session: uuid.New()})
	gen = s.Generation
	s = resolve(s, model.KnownSpeedLimit(30, model.LimitSourceOSM, ""))
	assert.Len(t, s.Alerts, 2, "a new session has no previous limit")
}

func TestTaughtLimitOutlivesInFlightLookup(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New()})
	s, ls := r.Reduce(s, sample(start, nil, f64(90)))
	require.Equal(t, naviuc.LookupLimit, ls[0].Kind)
	issued := ls[0]

	s, _ = r.Reduce(s, naviuc.MarkerTaughtEvent{Marker: model.SpeedMarker{
		Lat: start.Lat, Lng: start.Lng, Heading: 90, Speed: 50,
	}})
	s, _ = r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: issued.Generation, Epoch: issued.Epoch,
		Limit: model.KnownSpeedLimit(80, model.LimitSourceOSM, ""),
	})
	assert.Equal(t, model.LimitSourceUser, s.Limit.Source)
	assert.Equal(t, 50, *s.Limit.Value)

	s, ls = r.Reduce(s, sample(geo.Offset(start, 90, 31), nil, nil))
	require.Equal(t, []naviuc.LookupKind{naviuc.LookupLimit}, kinds(ls),
		"the dropped lookup does not block the next one")
	assert.Equal(t, s.LimitEpoch, ls[0].Epoch)
	s, _ = r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: ls[0].Generation, Epoch: ls[0].Epoch,
		Limit: model.KnownSpeedLimit(40, model.LimitSourceOSM, ""),
	})
	assert.Equal(t, model.LimitSourceOSM, s.Limit.Source)
	require.Len(t, s.Alerts, 1, "the taught limit is the previous one")
	assert.Equal(t, 40, *s.Alerts[0].SpeedLimit)
}

func TestOverspeed(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New()})
	s, _ = r.Reduce(s, sample(start, f64(20), nil)) // 72 km/h
	assert.False(t, s.Overspeed(), "unknown limit")
	s, _ = r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: s.Generation, Limit: model.KnownSpeedLimit(60, model.LimitSourceOSM, ""),
	})
	assert.True(t, s.Overspeed())
	s, _ = r.Reduce(s, naviuc.MarkerTaughtEvent{Marker: model.SpeedMarker{Speed: 80}})
	assert.False(t, s.Overspeed())
	assert.Equal(t, model.LimitSourceUser, s.Limit.Source)
}

func TestRouteTrackingAndStop(t *testing.T) {
	r := reducer(t)
	p := eastPath(4)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New(), Path: p})
	require.NotNil(t, s.Route)
	assert.Zero(t, s.Route.Progress)
	assert.True(t, s.Navigating())

	s, _ = r.Reduce(s, sample(geo.Offset(p[2], 0, 3), nil, f64(270)))
	require.NotNil(t, s.Route)
	assert.InDelta(t, 2.0/3, s.Route.Progress, 1e-9)
	assert.InDelta(t, 90, s.Display, 2, "look-ahead heading follows the path")

	gen := s.Generation
	s, _ = r.Reduce(s, naviuc.StopEvent{})
	assert.Nil(t, s.Route)
	assert.False(t, s.Active)
	assert.Greater(t, s.Generation, gen)
	assert.Equal(t, 270.0, s.Display, "device heading is displayed again")
	assert.NotNil(t, s.Position, "vehicle state is kept")
}

func TestStartWithKnownPosition(t *testing.T) {
	r := reducer(t)
	p := eastPath(4)
	s, _ := r.Reduce(naviuc.State{}, sample(p[3], nil, nil))
	s, _ = r.Reduce(s, naviuc.StartEvent{Session: uuid.New(), Path: p})
	require.NotNil(t, s.Route)
	assert.Equal(t, 3, s.Route.ClosestIndex)
}

func TestFeatureApproachAlert(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New()})
	s, _ = r.Reduce(s, sample(start, nil, nil))
	cam := geo.Offset(start, 0, 600)
	s, _ = r.Reduce(s, naviuc.FeaturesFetchedEvent{
		Generation: s.Generation,
		Features: []model.MapFeature{
			{ID: "node/1", Lat: cam.Lat, Lng: cam.Lng, Type: model.FeatureTypeCamera},
		},
	})
	require.NotNil(t, s.Nearest)
	assert.InDelta(t, 600, s.Nearest.Distance, 1e-6)
	assert.Empty(t, s.Alerts)

	s, _ = r.Reduce(s, sample(geo.Offset(start, 0, 290), nil, nil))
	assert.Empty(t, s.Alerts, "310m away")
	s, _ = r.Reduce(s, sample(geo.Offset(start, 0, 320), nil, nil))
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, model.AlertFeatureApproach, s.Alerts[0].Kind)
	assert.Equal(t, "node/1", s.Alerts[0].Feature.ID)
	s, _ = r.Reduce(s, sample(geo.Offset(start, 0, 340), nil, nil))
	assert.Len(t, s.Alerts, 1, "fires once per approach")
}

func TestCycleViewMode(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.CycleViewModeEvent{})
	assert.Equal(t, model.ViewModeHeadingUp, s.ViewMode)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	r := reducer(t)
	s, _ := r.Reduce(naviuc.State{}, naviuc.StartEvent{Session: uuid.New()})
	s, _ = r.Reduce(s, sample(start, nil, nil))
	s, _ = r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: s.Generation, Limit: model.KnownSpeedLimit(80, model.LimitSourceOSM, ""),
	})
	before := s
	alerts := append([]model.Alert(nil), s.Alerts...)
	_, _ = r.Reduce(s, naviuc.LimitResolvedEvent{
		Generation: s.Generation, Limit: model.KnownSpeedLimit(50, model.LimitSourceOSM, ""),
	})
	assert.Equal(t, before, s)
	assert.Equal(t, alerts, s.Alerts)
}
