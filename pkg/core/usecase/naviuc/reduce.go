// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naviuc

import (
	"math"

	"github.com/google/uuid"
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/featureuc"
	"github.com/momeni/navengine/pkg/core/usecase/headinguc"
	"github.com/momeni/navengine/pkg/core/usecase/routeuc"
)

// Reducer computes the state transitions. It has no side effects and
// keeps no state of its own, so Reduce may be tested with plain
// values. The lookups which must be performed are returned to the
// caller instead of being started.
type Reducer struct {
	features *featureuc.UseCase

	limitDisplacement   float64 // meters
	featureDisplacement float64 // meters
}

// NewReducer instantiates a Reducer. The displacements are the minimum
// distances (in meters) which the vehicle must move since the last
// issued lookup before another lookup of the same kind is issued.
func NewReducer(
	features *featureuc.UseCase, limitDisplacement, featureDisplacement float64,
) Reducer {
	return Reducer{
		features:            features,
		limitDisplacement:   limitDisplacement,
		featureDisplacement: featureDisplacement,
	}
}

// Reduce applies ev to s and returns the next state alongside the
// lookups which should be issued. The s argument is not modified.
func (r Reducer) Reduce(s State, ev Event) (State, []Lookup) {
	switch ev := ev.(type) {
	case StartEvent:
		return r.start(s, ev), nil
	case StopEvent:
		return stop(s), nil
	case LocationEvent:
		return r.locate(s, ev)
	case LimitResolvedEvent:
		return limitResolved(s, ev), nil
	case FeaturesFetchedEvent:
		return r.featuresFetched(s, ev), nil
	case MarkerTaughtEvent:
		return taught(s, ev), nil
	case CycleViewModeEvent:
		s.ViewMode = s.ViewMode.Next()
		return s, nil
	default:
		return s, nil
	}
}

func (r Reducer) start(s State, ev StartEvent) State {
	s = stop(s)
	s.Session = ev.Session
	s.Active = true
	if len(ev.Path) > 0 {
		s.Path = ev.Path
		s.Route = routeuc.Start(ev.Path)
		if s.Position != nil {
			s.Route = routeuc.Track(s.Path, *s.Position)
		}
	}
	if s.Position != nil {
		s.Display = headinguc.DisplayHeading(
			s.Route, s.Navigating(), *s.Position, s.DeviceHeading,
		)
	}
	return s
}

// stop discards the session state while keeping the vehicle state
// (position, speed, heading, and view mode).
func stop(s State) State {
	s.Generation++
	s.Session = uuid.Nil
	s.Active = false
	s.Path = nil
	s.Route = nil
	s.Limit = model.ResolvedSpeedLimit{}
	s.LastKnownLimit = nil
	s.Features = nil
	s.Nearest = nil
	s.Gate = featureuc.AlertGate{}
	s.LimitAnchor = nil
	s.FeatureAnchor = nil
	s.LimitInFlight = false
	s.FeatureInFlight = false
	s.Display = s.DeviceHeading
	return s
}

func (r Reducer) locate(s State, ev LocationEvent) (State, []Lookup) {
	smp := ev.Sample
	if smp.Coordinate.IsNaN() {
		return s, nil
	}
	pos := smp.Coordinate
	s.Position = &pos
	if smp.HasHeading() {
		s.DeviceHeading = *smp.Heading
	}
	if kmh, ok := smp.SpeedKmh(); ok {
		s.SpeedKmh = kmh
	}
	if ev.Simulated {
		s.GPS = model.GPSStatusSimulating
	} else {
		s.GPS = model.GPSStatusLocked
	}
	if s.Navigating() {
		s.Route = routeuc.Track(s.Path, pos)
	}
	s.Display = headinguc.DisplayHeading(
		s.Route, s.Navigating(), pos, s.DeviceHeading,
	)
	s = r.observeFeatures(s)
	if !s.Active {
		return s, nil
	}
	var lookups []Lookup
	if !s.LimitInFlight && moved(s.LimitAnchor, pos, r.limitDisplacement) {
		s.LimitAnchor = &pos
		s.LimitInFlight = true
		lookups = append(lookups, Lookup{
			Kind: LookupLimit, Generation: s.Generation, Epoch: s.LimitEpoch,
			Position: pos, Heading: s.DeviceHeading,
		})
	}
	if !s.FeatureInFlight && moved(s.FeatureAnchor, pos, r.featureDisplacement) {
		s.FeatureAnchor = &pos
		s.FeatureInFlight = true
		lookups = append(lookups, Lookup{
			Kind: LookupFeatures, Generation: s.Generation,
			Position: pos, Heading: s.DeviceHeading,
		})
	}
	return s, lookups
}

// moved reports whether pos is farther than d meters from the anchor.
// A missing anchor counts as moved.
func moved(anchor *model.Coordinate, pos model.Coordinate, d float64) bool {
	return anchor == nil || geo.Distance(*anchor, pos) > d
}

func (r Reducer) observeFeatures(s State) State {
	if s.Position == nil {
		return s
	}
	s.Nearest = r.features.Nearest(s.Features, *s.Position)
	var fire bool
	s.Gate, fire = r.features.Observe(s.Gate, s.Nearest)
	if fire {
		nf := *s.Nearest
		s.Alerts = appendAlert(s.Alerts, model.Alert{
			Kind: model.AlertFeatureApproach, Feature: &nf,
		})
	}
	return s
}

// appendAlert appends a to alerts without sharing the backing array of
// alerts with the previous states.
func appendAlert(alerts []model.Alert, a model.Alert) []model.Alert {
	out := make([]model.Alert, 0, len(alerts)+1)
	out = append(out, alerts...)
	return append(out, a)
}

// taught applies a user-taught marker as the current limit. The limit
// lookup which may be in flight was resolved without this marker, so
// its result is made stale by advancing the limit epoch.
func taught(s State, ev MarkerTaughtEvent) State {
	m := ev.Marker
	s.Limit = model.KnownSpeedLimit(
		int(math.Round(m.Speed)), model.LimitSourceUser, m.RoadName,
	)
	v := *s.Limit.Value
	s.LastKnownLimit = &v
	s.LimitEpoch++
	s.LimitInFlight = false
	return s
}

func limitResolved(s State, ev LimitResolvedEvent) State {
	if ev.Generation != s.Generation || ev.Epoch != s.LimitEpoch {
		return s
	}
	s.LimitInFlight = false
	s.Limit = ev.Limit
	if ev.Limit.Value == nil {
		return s
	}
	v := *ev.Limit.Value
	if s.LastKnownLimit != nil && v < *s.LastKnownLimit {
		s.Alerts = appendAlert(s.Alerts, model.Alert{
			Kind: model.AlertSpeedLimitLowered, SpeedLimit: &v,
		})
	}
	s.LastKnownLimit = &v
	return s
}

func (r Reducer) featuresFetched(s State, ev FeaturesFetchedEvent) State {
	if ev.Generation != s.Generation {
		return s
	}
	s.FeatureInFlight = false
	s.Features = ev.Features
	return r.observeFeatures(s)
}
