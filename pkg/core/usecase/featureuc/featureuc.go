// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package featureuc contains the feature proximity UseCase which finds
// the nearest traffic light or camera and decides when the driver
// should be alerted about approaching it.
package featureuc

import (
	"errors"
	"fmt"
	"math"

	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
)

// Band is a closed distance range (in meters) which triggers the
// approach alert.
type Band struct {
	Near, Far float64
}

// Contains reports whether d is in the b band.
func (b Band) Contains(d float64) bool {
	return d >= b.Near && d <= b.Far
}

// UseCase represents the feature proximity use case.
type UseCase struct {
	cutoff float64
	band   *Band
}

// Option is a functional option for the feature proximity use case.
type Option func(uc *UseCase) error

// WithCutoff option configures the exclusive maximum distance (in
// meters) of a feature which may be reported as the nearest one.
func WithCutoff(meters float64) Option {
	return func(uc *UseCase) error {
		if !(meters > 0) {
			return fmt.Errorf("cutoff (%v) is not positive", meters)
		}
		if uc.cutoff != 0 {
			return errors.New("cutoff is already configured")
		}
		uc.cutoff = meters
		return nil
	}
}

// WithAlertBand option configures the distance band which triggers the
// approach alert.
func WithAlertBand(near, far float64) Option {
	return func(uc *UseCase) error {
		if !(near >= 0 && far >= near) {
			return fmt.Errorf("alert band [%v, %v] is invalid", near, far)
		}
		uc.band = &Band{Near: near, Far: far}
		return nil
	}
}

// New instantiates a feature proximity use case. By default, features
// closer than 1000m are considered and the approach alert fires in the
// [250, 300] meters band.
func New(opts ...Option) (*UseCase, error) {
	uc := &UseCase{}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.cutoff == 0 {
		uc.cutoff = 1000
	}
	if uc.band == nil {
		uc.band = &Band{Near: 250, Far: 300}
	}
	return uc, nil
}

// Cutoff returns the configured cutoff distance.
func (uc *UseCase) Cutoff() float64 {
	return uc.cutoff
}

// Nearest returns the feature which is nearest to pos among the
// features which are strictly closer than the cutoff distance. The
// feature type does not matter and the first one wins among equally
// near features. A nil value is returned if none of them is close.
func (uc *UseCase) Nearest(
	features []model.MapFeature, pos model.Coordinate,
) *model.NearestFeature {
	var best *model.NearestFeature
	minDist := math.Inf(1)
	for _, f := range features {
		d := geo.Distance(pos, f.Coordinate())
		if d < uc.cutoff && d < minDist {
			minDist = d
			best = &model.NearestFeature{ID: f.ID, Type: f.Type, Distance: d}
		}
	}
	return best
}

// AlertGate remembers whether the approach alert has fired for the
// FeatureID feature. Its zero value is armed for any feature.
type AlertGate struct {
	FeatureID string
	Fired     bool
}

// Observe returns the next gate state for the nf nearest feature and
// reports whether the approach alert should fire now. The alert fires
// once per approach: when the nearest feature enters the band for the
// first time. The gate re-arms when the nearest feature changes or
// moves beyond the far edge of the band, so receding from a passed
// feature does not trigger it again.
func (uc *UseCase) Observe(
	g AlertGate, nf *model.NearestFeature,
) (AlertGate, bool) {
	if nf == nil {
		return AlertGate{}, false
	}
	if nf.ID != g.FeatureID {
		g = AlertGate{FeatureID: nf.ID}
	}
	switch {
	case nf.Distance > uc.band.Far:
		g.Fired = false
	case uc.band.Contains(nf.Distance) && !g.Fired:
		g.Fired = true
		return g, true
	case nf.Distance < uc.band.Near && !g.Fired:
		// entered closer than the band at once, e.g., the first fix
		// was taken near the feature; nothing to announce anymore
		g.Fired = true
	}
	return g, false
}
