// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/navengine/pkg/core/model"
)

// RoadFeed provides the tagged road ways around a position.
// Implementations must honor the ctx deadline since callers bound
// their lookups with short timeouts.
type RoadFeed interface {
	WaysAround(
		ctx context.Context, pos model.Coordinate, radius float64,
	) ([]model.RoadWay, error)
}

// FeatureFeed provides the point features (traffic lights and
// cameras) around a position.
type FeatureFeed interface {
	FeaturesAround(
		ctx context.Context, pos model.Coordinate, radius float64,
	) ([]model.MapFeature, error)
}

// Router plans a driving route between two positions.
type Router interface {
	Route(ctx context.Context, from, to model.Coordinate) (model.Path, error)
}

// LocationSource emits the location samples. The returned channel is
// closed when the source is exhausted or ctx is canceled, so canceling
// ctx is the way to unsubscribe.
type LocationSource interface {
	Subscribe(ctx context.Context) (<-chan model.LocationSample, error)

	// Simulated reports whether samples are replayed rather than
	// being read from a real receiver.
	Simulated() bool
}
