// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"

	"github.com/momeni/navengine/pkg/core/model"
)

// Valuer returns an Attr for the given slog.LogValuer value.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Coord returns a group Attr holding the lat and lng of c.
func Coord(key string, c model.Coordinate) slog.Attr {
	return slog.Group(key, slog.Float64("lat", c.Lat), slog.Float64("lng", c.Lng))
}

// Limit returns an Attr for a resolved speed limit, reporting its
// value (or "unknown") and its source.
func Limit(key string, l model.ResolvedSpeedLimit) slog.Attr {
	if l.Value == nil {
		return slog.Group(key, slog.String("value", "unknown"))
	}
	return slog.Group(key,
		slog.Int("value", *l.Value),
		slog.String("source", l.Source.String()),
		slog.String("road", l.RoadName),
	)
}
