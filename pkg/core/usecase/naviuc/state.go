// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naviuc

import (
	"github.com/google/uuid"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/featureuc"
)

// State is the whole navigation state. It is only changed by the
// Reducer.Reduce transitions; the Engine keeps one State and applies
// one event at a time to it.
type State struct {
	// Session identifies the active navigation session. It is the
	// zero UUID while no session is active.
	Session uuid.UUID
	// Generation is incremented by each start and stop, so results of
	// lookups which were issued in an older session may be dropped.
	Generation uint64
	Active     bool
	Path       model.Path // nil during free driving
	Route      *model.RouteState

	Position      *model.Coordinate
	DeviceHeading float64
	SpeedKmh      float64
	GPS           model.GPSStatus
	ViewMode      model.ViewMode
	Display       float64 // display heading

	Limit model.ResolvedSpeedLimit
	// LastKnownLimit is the latest known limit value. It survives the
	// unknown results, so a drop is detected against the last limit
	// which was shown to the driver.
	LastKnownLimit *int
	// LimitEpoch is incremented when the user teaches a limit, so the
	// limit lookups which were issued before it may be dropped.
	LimitEpoch uint64
	Features   []model.MapFeature
	Nearest    *model.NearestFeature
	Gate       featureuc.AlertGate

	LimitAnchor     *model.Coordinate // position of the last issued limit lookup
	FeatureAnchor   *model.Coordinate // position of the last issued features lookup
	LimitInFlight   bool
	FeatureInFlight bool

	// Alerts accumulates the alerts which are not delivered yet.
	Alerts []model.Alert
}

// Navigating reports whether a session with a non-empty path is
// active.
func (s *State) Navigating() bool {
	return s.Active && len(s.Path) > 0
}

// Overspeed reports whether the current speed exceeds the known limit.
func (s *State) Overspeed() bool {
	return s.Limit.Value != nil && s.SpeedKmh > float64(*s.Limit.Value)
}

// Event is an input of the Reducer.Reduce transitions.
type Event interface {
	isEvent()
}

// StartEvent starts a session following Path. An empty Path starts a
// free driving session which only resolves the limit and features.
type StartEvent struct {
	Session uuid.UUID
	Path    model.Path
}

// StopEvent stops the active session.
type StopEvent struct{}

// LocationEvent applies a location sample.
type LocationEvent struct {
	Sample    model.LocationSample
	Simulated bool
}

// LimitResolvedEvent carries the result of a speed limit lookup which
// was issued in the Generation session generation and the Epoch limit
// epoch.
type LimitResolvedEvent struct {
	Generation uint64
	Epoch      uint64
	Limit      model.ResolvedSpeedLimit
}

// FeaturesFetchedEvent carries the result of a features lookup which
// was issued in the Generation session generation. A failed lookup is
// reported with nil Features.
type FeaturesFetchedEvent struct {
	Generation uint64
	Features   []model.MapFeature
}

// MarkerTaughtEvent applies a speed marker which the user has just
// saved at the current position.
type MarkerTaughtEvent struct {
	Marker model.SpeedMarker
}

// CycleViewModeEvent switches to the next view mode.
type CycleViewModeEvent struct{}

func (StartEvent) isEvent()           {}
func (StopEvent) isEvent()            {}
func (LocationEvent) isEvent()        {}
func (LimitResolvedEvent) isEvent()   {}
func (FeaturesFetchedEvent) isEvent() {}
func (MarkerTaughtEvent) isEvent()    {}
func (CycleViewModeEvent) isEvent()   {}

// LookupKind identifies the kind of an asynchronous lookup.
type LookupKind int

// Supported lookup kinds.
const (
	LookupLimit LookupKind = iota
	LookupFeatures
)

func (k LookupKind) String() string {
	if k == LookupLimit {
		return "speed-limit"
	}
	return "features"
}

// Lookup is a side effect which is requested by a transition. The
// Engine performs it asynchronously and reports its result back as a
// LimitResolvedEvent or FeaturesFetchedEvent.
type Lookup struct {
	Kind       LookupKind
	Generation uint64
	Epoch      uint64 // LimitEpoch of the issuing state
	Position   model.Coordinate
	Heading    float64
}
