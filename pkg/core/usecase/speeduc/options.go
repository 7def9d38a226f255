// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package speeduc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the speed limit use case.
type Option func(uc *UseCase) error

// WithTimeout option bounds each road feed lookup by the given
// timeout. A lookup which takes longer is treated as a failure.
func WithTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if uc.timeout != 0 {
			return errors.New("timeout is already configured")
		}
		uc.timeout = timeout
		return nil
	}
}

// WithLookupRadius option configures the radius (in meters) which is
// passed to the road feed.
func WithLookupRadius(meters float64) Option {
	return func(uc *UseCase) error {
		if !(meters > 0) {
			return fmt.Errorf("lookup radius (%v) is not positive", meters)
		}
		if uc.radius != 0 {
			return errors.New("lookup radius is already configured")
		}
		uc.radius = meters
		return nil
	}
}

// WithRegistry option replaces the DefaultRegistry. Entry names are
// normalized, so they may be given with diacritics.
func WithRegistry(entries []RegistryEntry) Option {
	return func(uc *UseCase) error {
		if uc.registry != nil {
			return errors.New("registry is already configured")
		}
		reg := make([]RegistryEntry, 0, len(entries))
		for i, e := range entries {
			n := NormalizeName(e.Name)
			if n == "" || e.Limit <= 0 {
				return fmt.Errorf("registry entry #%d (%q: %d) is invalid", i, e.Name, e.Limit)
			}
			reg = append(reg, RegistryEntry{Name: n, Limit: e.Limit})
		}
		uc.registry = reg
		return nil
	}
}

// WithZoneLimits option replaces the DefaultZoneLimits.
func WithZoneLimits(zl ZoneLimits) Option {
	return func(uc *UseCase) error {
		if zl.Urban <= 0 || zl.UrbanDivided <= 0 || zl.Rural <= 0 || zl.RuralDivided <= 0 {
			return fmt.Errorf("zone limits (%+v) must be positive", zl)
		}
		uc.zones = &zl
		return nil
	}
}
