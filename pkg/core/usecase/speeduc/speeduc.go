// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package speeduc contains the speed limit UseCase which resolves the
// applicable speed limit of a position from several sources, using a
// strict priority:
//  1. a user-taught speed marker which applies to the heading,
//  2. the registry of well-known road names,
//  3. the maxspeed tag of the selected road way.
//
// The first source which decides wins. If none of them decides, or the
// road feed fails, the limit is reported as unknown and no default
// value is ever substituted.
package speeduc

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
)

// MarkerFinder finds the user-taught speed marker which applies to a
// position and heading. It is implemented by the memoryuc.UseCase.
type MarkerFinder interface {
	FindNearby(
		ctx context.Context, pos model.Coordinate, heading float64,
	) *model.SpeedMarker
}

// UseCase represents the speed limit resolution use case.
type UseCase struct {
	markers MarkerFinder
	roads   repo.RoadFeed

	timeout  time.Duration
	radius   float64
	registry []RegistryEntry
	zones    *ZoneLimits
}

// New instantiates a speed limit use case. The markers finder and the
// road feed are required. By default, lookups time out after 2s and
// consider the ways within 20m of the position.
func New(
	markers MarkerFinder, roads repo.RoadFeed, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{markers: markers, roads: roads}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.timeout == 0 {
		uc.timeout = 2 * time.Second
	}
	if uc.radius == 0 {
		uc.radius = 20
	}
	if uc.registry == nil {
		uc.registry = DefaultRegistry
	}
	if uc.zones == nil {
		zl := DefaultZoneLimits
		uc.zones = &zl
	}
	return uc, nil
}

// Timeout returns the configured road feed lookup timeout.
func (uc *UseCase) Timeout() time.Duration {
	return uc.timeout
}

// Resolve returns the speed limit at pos for a vehicle which is moving
// along the heading direction. It never fails; all failures degrade
// into an unknown limit. The ctx may be canceled in order to abandon
// the road feed lookup, which is also bounded by the configured
// timeout.
func (uc *UseCase) Resolve(
	ctx context.Context, pos model.Coordinate, heading float64,
) model.ResolvedSpeedLimit {
	if m := uc.markers.FindNearby(ctx, pos, heading); m != nil {
		return model.KnownSpeedLimit(
			int(math.Round(m.Speed)), model.LimitSourceUser, m.RoadName,
		)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	ways, err := uc.roads.WaysAround(ctx, pos, uc.radius)
	if err != nil {
		log.Debug(ctx, "road feed lookup failed",
			log.Err("err", err), log.Coord("pos", pos),
		)
		return model.UnknownSpeedLimit("")
	}
	way, ok := SelectWay(ways)
	if !ok {
		return model.UnknownSpeedLimit("")
	}
	if v, ok := lookup(uc.registry, way.Name); ok {
		return model.KnownSpeedLimit(v, model.LimitSourceRegistry, way.Name)
	}
	if v, ok := ParseMaxSpeed(way, *uc.zones); ok {
		return model.KnownSpeedLimit(v, model.LimitSourceOSM, way.Name)
	}
	log.Debug(ctx, "no speed limit for the selected way",
		slog.Int64("way", way.ID), slog.String("maxspeed", way.Tag("maxspeed")),
	)
	return model.UnknownSpeedLimit(way.Name)
}
