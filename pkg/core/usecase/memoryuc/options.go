// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memoryuc

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Option is a functional option for the memory use case.
type Option func(uc *UseCase) error

func positiveMeters(name string, m float64, dst *float64) error {
	if !(m > 0) || math.IsInf(m, 0) {
		return fmt.Errorf("%s (%v) is not a positive finite distance", name, m)
	}
	if *dst != 0 {
		return fmt.Errorf("%s is already configured", name)
	}
	*dst = m
	return nil
}

// WithDedupRadius option configures the radius (in meters) around a
// newly saved marker which is cleared from older markers.
func WithDedupRadius(meters float64) Option {
	return func(uc *UseCase) error {
		return positiveMeters("dedup radius", meters, &uc.dedupRadius)
	}
}

// WithSearchRadius option configures the maximum distance (in meters)
// of a marker which may be returned by the FindNearby method.
func WithSearchRadius(meters float64) Option {
	return func(uc *UseCase) error {
		return positiveMeters("search radius", meters, &uc.searchRadius)
	}
}

// WithHeadingTolerance option configures the exclusive maximum angle
// (in degrees) between the current heading and the heading of a
// marker, so it may be considered as applicable.
func WithHeadingTolerance(degrees float64) Option {
	return func(uc *UseCase) error {
		if !(degrees > 0 && degrees <= 180) {
			return fmt.Errorf("heading tolerance (%v) is not in (0, 180]", degrees)
		}
		if uc.headingTolerance != 0 {
			return errors.New("heading tolerance is already configured")
		}
		uc.headingTolerance = degrees
		return nil
	}
}

// WithCapacity option configures the maximum number of the stored
// markers. Oldest markers are evicted when this capacity is exceeded.
func WithCapacity(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("capacity (%d) is not positive", n)
		}
		if uc.capacity != 0 {
			return errors.New("capacity is already configured")
		}
		uc.capacity = n
		return nil
	}
}

// WithClock option replaces the time.Now function which is used for
// stamping the new markers.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		uc.now = now
		return nil
	}
}
