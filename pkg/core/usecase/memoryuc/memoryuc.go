// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memoryuc contains the spatial memory UseCase which keeps the
// user-taught speed limit corrections. Markers are bound to a location
// and a direction of travel, so a correction for one side of a divided
// road does not apply to the opposite side.
// Two use cases are supported:
//  1. Saving a marker, replacing the markers which are too close to it,
//  2. Finding the applicable marker for a position and heading.
//
// Persistence failures are never fatal. A collection which cannot be
// loaded is treated as empty and a collection which cannot be saved is
// only logged, keeping the previously persisted collection intact.
package memoryuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/momeni/navengine/pkg/core/cerr"
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
)

// UseCase represents the spatial memory use case. It holds the
// markers repository and the proximity settings.
type UseCase struct {
	markers repo.Markers

	dedupRadius      float64
	searchRadius     float64
	headingTolerance float64
	capacity         int
	now              func() time.Time

	// mu serializes the load-modify-save cycles of Save and Clear
	mu sync.Mutex
}

// New instantiates a memory use case.
// The markers repository is required while the proximity settings
// are optional and take their defaults (50m dedup radius, 200m search
// radius, 45 degrees heading tolerance, and 500 markers capacity)
// if they are not passed as functional options.
func New(markers repo.Markers, opts ...Option) (*UseCase, error) {
	uc := &UseCase{markers: markers}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.dedupRadius == 0 {
		uc.dedupRadius = 50
	}
	if uc.searchRadius == 0 {
		uc.searchRadius = 200
	}
	if uc.headingTolerance == 0 {
		uc.headingTolerance = 45
	}
	if uc.capacity == 0 {
		uc.capacity = 500
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// load returns the persisted markers, or an empty slice if they are
// missing or unreadable.
func (uc *UseCase) load(ctx context.Context) []model.SpeedMarker {
	mm, err := uc.markers.Load(ctx)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			log.Warn(ctx, "loading speed markers failed", log.Err("err", err))
		}
		return nil
	}
	return mm
}

func validate(pos model.Coordinate, heading, speed float64) error {
	switch {
	case pos.IsNaN():
		return errors.New("position is not a number")
	case math.IsNaN(heading) || math.IsInf(heading, 0):
		return errors.New("heading is not a finite number")
	case !(speed > 0) || math.IsInf(speed, 0):
		return fmt.Errorf("speed (%v) is not a positive finite number", speed)
	}
	return nil
}

// Save stores a marker for the speed limit (km/h) at pos while moving
// along the heading direction. All older markers within the dedup
// radius of pos are removed regardless of their headings, and oldest
// markers are evicted if the capacity is exceeded. The new marker is
// returned even if it could not be persisted (which is only logged).
// Only invalid arguments cause an error.
func (uc *UseCase) Save(
	ctx context.Context,
	pos model.Coordinate,
	heading, speed float64,
	roadName string,
) (*model.SpeedMarker, error) {
	if err := validate(pos, heading, speed); err != nil {
		return nil, cerr.BadRequest(err)
	}
	m := model.SpeedMarker{
		Lat:       pos.Lat,
		Lng:       pos.Lng,
		Heading:   heading,
		Speed:     speed,
		Timestamp: uc.now().UnixMilli(),
		RoadName:  roadName,
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	old := uc.load(ctx)
	kept := make([]model.SpeedMarker, 0, len(old)+1)
	for _, o := range old {
		if geo.Distance(o.Coordinate(), pos) > uc.dedupRadius {
			kept = append(kept, o)
		}
	}
	kept = append(kept, m)
	if n := len(kept) - uc.capacity; n > 0 {
		kept = kept[n:]
	}
	if err := uc.markers.Save(ctx, kept); err != nil {
		log.Error(ctx, "persisting speed markers failed",
			log.Err("err", err),
			log.Coord("pos", pos),
			slog.Int("count", len(kept)),
		)
	}
	return &m, nil
}

// FindNearby returns the closest marker within the search radius of
// pos whose heading differs from the given heading by less than the
// heading tolerance. If several markers are equally close, the older
// one wins. A nil marker is returned if none of them applies.
func (uc *UseCase) FindNearby(
	ctx context.Context, pos model.Coordinate, heading float64,
) *model.SpeedMarker {
	var best *model.SpeedMarker
	bestDist := math.Inf(1)
	mm := uc.load(ctx)
	for i := range mm {
		d := geo.Distance(mm[i].Coordinate(), pos)
		if d > uc.searchRadius {
			continue
		}
		if geo.AngleDiff(heading, mm[i].Heading) >= uc.headingTolerance {
			continue
		}
		if d < bestDist {
			best, bestDist = &mm[i], d
		}
	}
	return best
}

// List returns all persisted markers in their insertion order.
func (uc *UseCase) List(ctx context.Context) []model.SpeedMarker {
	mm := uc.load(ctx)
	if mm == nil {
		mm = []model.SpeedMarker{}
	}
	return mm
}

// Clear removes all markers. Unlike Save, a persistence failure is
// returned since clearing is an explicit maintenance operation.
func (uc *UseCase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := uc.markers.Save(ctx, []model.SpeedMarker{}); err != nil {
		return fmt.Errorf("saving an empty collection: %w", err)
	}
	return nil
}
