// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package geo provides the geodesy primitives which are used by the
// navigation use cases. All distances are computed on a sphere with
// the EarthRadius radius, so results are consistent across the
// speed markers, route progress, and feature proximity computations.
package geo

import (
	"math"

	"github.com/momeni/navengine/pkg/core/model"
)

// EarthRadius is the mean radius of the Earth in meters.
const EarthRadius = 6371000.0

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Distance returns the great-circle distance between a and b in meters
// using the haversine formula. It is symmetric and returns zero when
// a and b are equal.
func Distance(a, b model.Coordinate) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := lat2 - lat1
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial bearing from a to b in degrees, in the
// [0, 360) range, where 0 is the true north and angles grow clockwise.
func Bearing(a, b model.Coordinate) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLng := toRad(b.Lng - a.Lng)
	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	brng := math.Mod(toDeg(math.Atan2(y, x))+360, 360)
	if brng >= 360 {
		brng = 0
	}
	return brng
}

// AngleDiff returns the circular difference of two headings (degrees)
// in the [0, 180] range.
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}

// PathLength returns the sum of the consecutive segment lengths of p.
// Empty and single point paths have a zero length.
func PathLength(p model.Path) float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += Distance(p[i-1], p[i])
	}
	return total
}

// Offset returns the coordinate which is reached by moving from c
// along the given bearing (degrees) for dist meters. It is the inverse
// of the Distance and Bearing functions.
func Offset(c model.Coordinate, bearing, dist float64) model.Coordinate {
	lat1, lng1 := toRad(c.Lat), toRad(c.Lng)
	brng := toRad(bearing)
	ad := dist / EarthRadius
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ad) +
		math.Cos(lat1)*math.Sin(ad)*math.Cos(brng))
	lng2 := lng1 + math.Atan2(
		math.Sin(brng)*math.Sin(ad)*math.Cos(lat1),
		math.Cos(ad)-math.Sin(lat1)*math.Sin(lat2),
	)
	return model.Coordinate{Lat: toDeg(lat2), Lng: toDeg(lng2)}
}
