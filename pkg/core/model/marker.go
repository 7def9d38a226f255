// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// SpeedMarker is a user-taught speed limit correction which is bound
// to a location and a direction of travel. Markers are kept in a capped
// collection which is ordered by their insertion time, so the oldest
// marker is evicted first.
//
// The JSON tags describe the persisted layout of a marker and must not
// be changed without migrating the already persisted collections.
type SpeedMarker struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Heading   float64 `json:"heading"`   // direction of travel, degrees
	Speed     float64 `json:"speed"`     // speed limit, km/h
	Timestamp int64   `json:"timestamp"` // creation time, unix millis
	RoadName  string  `json:"roadName,omitempty"`
}

// Coordinate returns the location of the m marker.
func (m SpeedMarker) Coordinate() Coordinate {
	return Coordinate{Lat: m.Lat, Lng: m.Lng}
}
