// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Path is an ordered sequence of coordinates describing the planned
// route from its origin (index 0) to its destination. A Path which is
// handed to the navigation engine is treated as immutable and its
// backing array must not be modified afterwards.
type Path []Coordinate

// Clone returns a copy of p which does not share its backing array.
// A nil path is cloned as nil.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// RouteState describes the progress of the vehicle along an active
// Path. It is derived state, recomputed from scratch on each location
// update, so nothing in a RouteState depends on the previous one.
//
// TraveledPath is Path[0..ClosestIndex] and RemainingPath is
// Path[ClosestIndex..], both inclusive, so the closest point appears
// in both halves and the concatenation of TraveledPath with
// RemainingPath[1:] reconstructs the original Path.
type RouteState struct {
	TraveledPath      Path    `json:"traveledPath"`
	RemainingPath     Path    `json:"remainingPath"`
	TraveledDistance  float64 `json:"traveledDistance"`  // meters
	RemainingDistance float64 `json:"remainingDistance"` // meters
	Progress          float64 `json:"progress"`          // in [0, 1]
	ClosestIndex      int     `json:"closestIndex"`
}
