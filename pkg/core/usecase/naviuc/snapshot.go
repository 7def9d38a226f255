// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naviuc

import (
	"github.com/google/uuid"
	"github.com/momeni/navengine/pkg/core/model"
)

// Snapshot is a read-only copy of the navigation outputs after one
// transition. It shares no mutable memory with the engine state.
type Snapshot struct {
	Session        string                   `json:"session,omitempty"`
	Active         bool                     `json:"active"`
	Navigating     bool                     `json:"navigating"`
	GPS            model.GPSStatus          `json:"gps"`
	Position       *model.Coordinate        `json:"position,omitempty"`
	SpeedKmh       float64                  `json:"speedKmh"`
	Heading        float64                  `json:"heading"` // display heading
	ViewMode       model.ViewMode           `json:"viewMode"`
	SpeedLimit     model.ResolvedSpeedLimit `json:"speedLimit"`
	Overspeed      bool                     `json:"overspeed"`
	Route          *model.RouteState        `json:"route,omitempty"`
	NearestFeature *model.NearestFeature    `json:"nearestFeature,omitempty"`
	Features       []model.MapFeature       `json:"features,omitempty"`
	Alerts         []model.Alert            `json:"alerts,omitempty"`
}

func snapshotOf(s *State) Snapshot {
	snap := Snapshot{
		Active:     s.Active,
		Navigating: s.Navigating(),
		GPS:        s.GPS,
		SpeedKmh:   s.SpeedKmh,
		Heading:    s.Display,
		ViewMode:   s.ViewMode,
		SpeedLimit: s.Limit,
		Overspeed:  s.Overspeed(),
	}
	if s.Session != uuid.Nil {
		snap.Session = s.Session.String()
	}
	if s.Position != nil {
		p := *s.Position
		snap.Position = &p
	}
	if s.Route != nil {
		rs := *s.Route
		snap.Route = &rs
	}
	if s.Nearest != nil {
		nf := *s.Nearest
		snap.NearestFeature = &nf
	}
	if len(s.Features) > 0 {
		snap.Features = append([]model.MapFeature(nil), s.Features...)
	}
	if len(s.Alerts) > 0 {
		snap.Alerts = append([]model.Alert(nil), s.Alerts...)
	}
	return snap
}
