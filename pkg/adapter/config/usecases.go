// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"cmp"
	"fmt"
	"time"

	"github.com/momeni/navengine/pkg/adapter/config/settings"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/momeni/navengine/pkg/core/usecase/featureuc"
	"github.com/momeni/navengine/pkg/core/usecase/memoryuc"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/momeni/navengine/pkg/core/usecase/speeduc"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Memory     Memory     // speed markers memory settings
	Speed      Speed      // speed limit resolution settings
	Navigation Navigation // navigation engine settings
}

// Memory contains the configuration settings of the speed markers
// memory. A nil field is left to the use case default.
type Memory struct {
	Capacity         *int     `yaml:"capacity,omitempty"`
	DedupRadius      *float64 `yaml:"dedup-radius,omitempty"`      // meters
	SearchRadius     *float64 `yaml:"search-radius,omitempty"`     // meters
	HeadingTolerance *float64 `yaml:"heading-tolerance,omitempty"` // degrees
}

// Speed contains the configuration settings of the speed limit
// resolution.
type Speed struct {
	Timeout      *settings.Duration `yaml:"timeout,omitempty"`
	LookupRadius *float64           `yaml:"lookup-radius,omitempty"` // meters
	Registry     []RegistryEntry    `yaml:"registry,omitempty"`
}

// RegistryEntry is a well-known road with a fixed speed limit.
// A non-empty registry replaces the built-in one.
type RegistryEntry struct {
	Name  string `yaml:"name"`
	Limit int    `yaml:"limit"`
}

// Navigation contains the configuration settings of the navigation
// engine and its features proximity tracking.
type Navigation struct {
	SpeedLookupDisplacement   *float64           `yaml:"speed-lookup-displacement,omitempty"`
	FeatureLookupDisplacement *float64           `yaml:"feature-lookup-displacement,omitempty"`
	FeatureRadius             *float64           `yaml:"feature-radius,omitempty"`
	FeatureTimeout            *settings.Duration `yaml:"feature-timeout,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

// ValidateAndNormalize clamps the numeric settings into their
// acceptable ranges, reporting the first out of range value.
func (u *Usecases) ValidateAndNormalize() error {
	m, s, n := &u.Memory, &u.Speed, &u.Navigation
	checks := []struct {
		name string
		err  error
	}{
		{"memory.capacity", rangeErr(settings.VerifyRange(
			&m.Capacity, ptr(1), ptr(100000)))},
		{"memory.dedup-radius", rangeErr(settings.VerifyRange(
			&m.DedupRadius, ptr(1.0), ptr(10000.0)))},
		{"memory.search-radius", rangeErr(settings.VerifyRange(
			&m.SearchRadius, ptr(1.0), ptr(10000.0)))},
		{"memory.heading-tolerance", rangeErr(settings.VerifyRange(
			&m.HeadingTolerance, ptr(1.0), ptr(180.0)))},
		{"speed.timeout", rangeErr(settings.VerifyRange(
			&s.Timeout,
			ptr(settings.Duration(100*time.Millisecond)),
			ptr(settings.Duration(time.Minute))))},
		{"speed.lookup-radius", rangeErr(settings.VerifyRange(
			&s.LookupRadius, ptr(1.0), ptr(1000.0)))},
		{"navigation.speed-lookup-displacement", rangeErr(settings.VerifyRange(
			&n.SpeedLookupDisplacement, ptr(1.0), ptr(10000.0)))},
		{"navigation.feature-lookup-displacement", rangeErr(settings.VerifyRange(
			&n.FeatureLookupDisplacement, ptr(1.0), ptr(10000.0)))},
		{"navigation.feature-radius", rangeErr(settings.VerifyRange(
			&n.FeatureRadius, ptr(1.0), ptr(10000.0)))},
		{"navigation.feature-timeout", rangeErr(settings.VerifyRange(
			&n.FeatureTimeout,
			ptr(settings.Duration(100*time.Millisecond)),
			ptr(settings.Duration(time.Minute))))},
	}
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("%s: %w", c.name, c.err)
		}
	}
	for i, e := range s.Registry {
		if e.Name == "" || e.Limit <= 0 {
			return fmt.Errorf("speed.registry[%d]: invalid entry", i)
		}
	}
	return nil
}

// rangeErr converts a typed nil *OutOfRangeError into a nil error.
func rangeErr[T cmp.Ordered](
	err *settings.OutOfRangeError[T],
) error {
	if err == nil {
		return nil
	}
	return err
}

// NewUseCase instantiates a new speed markers memory use case based
// on the settings in the m struct.
func (m Memory) NewUseCase(markers repo.Markers) (*memoryuc.UseCase, error) {
	opts := make([]memoryuc.Option, 0, 4)
	if m.Capacity != nil {
		opts = append(opts, memoryuc.WithCapacity(*m.Capacity))
	}
	if m.DedupRadius != nil {
		opts = append(opts, memoryuc.WithDedupRadius(*m.DedupRadius))
	}
	if m.SearchRadius != nil {
		opts = append(opts, memoryuc.WithSearchRadius(*m.SearchRadius))
	}
	if m.HeadingTolerance != nil {
		opts = append(opts, memoryuc.WithHeadingTolerance(*m.HeadingTolerance))
	}
	return memoryuc.New(markers, opts...)
}

// NewUseCase instantiates a new speed limit use case based on the
// settings in the s struct.
func (s Speed) NewUseCase(
	markers speeduc.MarkerFinder, roads repo.RoadFeed,
) (*speeduc.UseCase, error) {
	opts := make([]speeduc.Option, 0, 3)
	if s.Timeout != nil {
		opts = append(opts, speeduc.WithTimeout(time.Duration(*s.Timeout)))
	}
	if s.LookupRadius != nil {
		opts = append(opts, speeduc.WithLookupRadius(*s.LookupRadius))
	}
	if len(s.Registry) > 0 {
		entries := make([]speeduc.RegistryEntry, 0, len(s.Registry))
		for _, e := range s.Registry {
			entries = append(entries, speeduc.RegistryEntry{
				Name: e.Name, Limit: e.Limit,
			})
		}
		opts = append(opts, speeduc.WithRegistry(entries))
	}
	return speeduc.New(markers, roads, opts...)
}

// NewFeatureUseCase instantiates the features proximity use case,
// using the feature radius as its cutoff distance.
func (n Navigation) NewFeatureUseCase() (*featureuc.UseCase, error) {
	var opts []featureuc.Option
	if n.FeatureRadius != nil {
		opts = append(opts, featureuc.WithCutoff(*n.FeatureRadius))
	}
	return featureuc.New(opts...)
}

// NewEngine instantiates a navigation engine based on the settings in
// the n struct. The speed limit lookups are bounded by the limitTimeout
// which should come from the speed use case.
func (n Navigation) NewEngine(
	limits naviuc.SpeedResolver,
	markers naviuc.MarkerSaver,
	features repo.FeatureFeed,
	proxim *featureuc.UseCase,
	limitTimeout time.Duration,
	extra ...naviuc.Option,
) (*naviuc.Engine, error) {
	opts := []naviuc.Option{naviuc.WithLimitTimeout(limitTimeout)}
	if n.SpeedLookupDisplacement != nil {
		opts = append(opts, naviuc.WithLimitDisplacement(*n.SpeedLookupDisplacement))
	}
	if n.FeatureLookupDisplacement != nil {
		opts = append(opts, naviuc.WithFeatureDisplacement(*n.FeatureLookupDisplacement))
	}
	if n.FeatureRadius != nil {
		opts = append(opts, naviuc.WithFeatureRadius(*n.FeatureRadius))
	}
	if n.FeatureTimeout != nil {
		opts = append(opts, naviuc.WithFeatureTimeout(time.Duration(*n.FeatureTimeout)))
	}
	opts = append(opts, extra...)
	return naviuc.New(limits, markers, features, proxim, opts...)
}
