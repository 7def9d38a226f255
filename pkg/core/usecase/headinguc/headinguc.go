// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package headinguc computes the heading which should be used for
// orienting the map. While navigating, the heading looks ahead along
// the remaining path, so the map turns before the vehicle does.
// Otherwise, the device reported heading is used as is.
package headinguc

import (
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
)

// LookAhead is the number of path points to skip after the nearest
// one when choosing the target point of the display heading.
const LookAhead = 2

// DisplayHeading returns the map heading (degrees) for the vehicle at
// pos. If navigating is true and the remaining path of rs has more than
// one point, the bearing from pos towards the remaining point with the
// LookAhead index (or the last remaining point if it is shorter) is
// returned. Otherwise, the device heading is returned.
func DisplayHeading(
	rs *model.RouteState,
	navigating bool,
	pos model.Coordinate,
	device float64,
) float64 {
	if !navigating || rs == nil || len(rs.RemainingPath) <= 1 {
		return device
	}
	i := min(LookAhead, len(rs.RemainingPath)-1)
	return geo.Bearing(pos, rs.RemainingPath[i])
}
