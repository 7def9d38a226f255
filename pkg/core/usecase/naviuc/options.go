// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package naviuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/navengine/pkg/core/model"
)

// Option is a functional option for the navigation Engine.
type Option func(e *Engine) error

func positive(name string, v float64, dst *float64) error {
	if !(v > 0) {
		return fmt.Errorf("%s (%v) is not positive", name, v)
	}
	if *dst != 0 {
		return fmt.Errorf("%s is already configured", name)
	}
	*dst = v
	return nil
}

func positiveDuration(name string, d time.Duration, dst *time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s (%v) is not positive", name, d)
	}
	if *dst != 0 {
		return fmt.Errorf("%s is already configured", name)
	}
	*dst = d
	return nil
}

// WithLimitDisplacement option configures the distance (in meters)
// which the vehicle must move before the speed limit is looked up
// again.
func WithLimitDisplacement(meters float64) Option {
	return func(e *Engine) error {
		return positive("limit displacement", meters, &e.limitDisplacement)
	}
}

// WithFeatureDisplacement option configures the distance (in meters)
// which the vehicle must move before the features are fetched again.
func WithFeatureDisplacement(meters float64) Option {
	return func(e *Engine) error {
		return positive("feature displacement", meters, &e.featureDisplacement)
	}
}

// WithFeatureRadius option configures the radius (in meters) which is
// passed to the features feed.
func WithFeatureRadius(meters float64) Option {
	return func(e *Engine) error {
		return positive("feature radius", meters, &e.featureRadius)
	}
}

// WithLimitTimeout option bounds each speed limit lookup.
func WithLimitTimeout(d time.Duration) Option {
	return func(e *Engine) error {
		return positiveDuration("limit timeout", d, &e.limitTimeout)
	}
}

// WithFeatureTimeout option bounds each features lookup.
func WithFeatureTimeout(d time.Duration) Option {
	return func(e *Engine) error {
		return positiveDuration("feature timeout", d, &e.featureTimeout)
	}
}

// WithAlertHandler option registers a function which is called for
// every emitted alert. It is called while the engine is locked, so it
// must return quickly and must not call the engine methods.
func WithAlertHandler(h func(context.Context, model.Alert)) Option {
	return func(e *Engine) error {
		if h == nil {
			return errors.New("alert handler is nil")
		}
		e.onAlert = h
		return nil
	}
}
