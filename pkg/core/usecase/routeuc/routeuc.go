// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routeuc tracks the progress of the vehicle along a planned
// path. The progress is recomputed from scratch for every position by
// snapping the position to the nearest path point, so it is not
// monotonic: a position which is closer to an earlier point (e.g., on
// a self-intersecting path) moves the progress backwards.
package routeuc

import (
	"math"

	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
)

// ClosestIndex returns the index of the path point which is nearest to
// pos. The earliest index wins among equally near points. It returns
// -1 for an empty path.
func ClosestIndex(path model.Path, pos model.Coordinate) int {
	idx := -1
	minDist := math.Inf(1)
	for i, p := range path {
		if d := geo.Distance(p, pos); d < minDist {
			idx, minDist = i, d
		}
	}
	return idx
}

// Start returns the initial route state of path, before any position
// is known. The whole path is remaining and the progress is zero.
// A nil state is returned for an empty path.
func Start(path model.Path) *model.RouteState {
	if len(path) == 0 {
		return nil
	}
	return split(path, 0)
}

// Track returns the route state of path for the pos position.
// A nil state is returned for an empty path.
func Track(path model.Path, pos model.Coordinate) *model.RouteState {
	idx := ClosestIndex(path, pos)
	if idx < 0 {
		return nil
	}
	return split(path, idx)
}

// split divides path at idx, including the idx point in both halves.
// Halves share the backing array of path which must not be modified.
func split(path model.Path, idx int) *model.RouteState {
	traveled := path[:idx+1:idx+1]
	remaining := path[idx:]
	td := geo.PathLength(traveled)
	rd := geo.PathLength(remaining)
	progress := 0.0
	if total := td + rd; total > 0 {
		progress = math.Max(0, math.Min(1, td/total))
	}
	return &model.RouteState{
		TraveledPath:      traveled,
		RemainingPath:     remaining,
		TraveledDistance:  td,
		RemainingDistance: rd,
		Progress:          progress,
		ClosestIndex:      idx,
	}
}
