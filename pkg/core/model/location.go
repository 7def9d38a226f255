// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"math"
	"time"
)

// LocationSample is one fix of the location source. Speed is in
// meters per second and Heading is in degrees (0 = north, clockwise).
// Both of them may be nil or NaN, meaning that the source could not
// provide them for this fix and the previous values must be retained.
type LocationSample struct {
	Coordinate
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Accuracy  *float64  `json:"accuracy,omitempty"` // meters
	Timestamp time.Time `json:"timestamp"`
}

// HasSpeed reports whether s carries a usable speed value.
func (s LocationSample) HasSpeed() bool {
	return s.Speed != nil && !math.IsNaN(*s.Speed)
}

// HasHeading reports whether s carries a usable heading value.
func (s LocationSample) HasHeading() bool {
	return s.Heading != nil && !math.IsNaN(*s.Heading)
}

// SpeedKmh converts the m/s speed of s into km/h, clamping negative
// values to zero. The ok return value is false if s has no speed.
func (s LocationSample) SpeedKmh() (kmh float64, ok bool) {
	if !s.HasSpeed() {
		return 0, false
	}
	return math.Max(0, *s.Speed*3.6), true
}

// GPSStatus describes the status of the location source from the
// engine point of view.
type GPSStatus string

// Valid values for the GPSStatus enum.
const (
	GPSStatusSeeking    GPSStatus = "seeking"    // no fix yet
	GPSStatusLocked     GPSStatus = "locked"     // real fixes arrive
	GPSStatusSimulating GPSStatus = "simulating" // replayed fixes
)
