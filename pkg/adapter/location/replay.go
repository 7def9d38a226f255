// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package location implements the repo.LocationSource interface for
// the simulated drives. A Replay source walks along a path with a
// constant speed and a File source replays the samples which were
// recorded as JSON lines.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
)

// nearVertex is the distance (meters) below which a sample is dropped
// in favor of the following path vertex.
const nearVertex = 1e-3

// Replay is a repo.LocationSource which drives along a path.
// One sample is emitted per interval, each one speed*interval meters
// further along the path, and the last vertex is always emitted.
type Replay struct {
	path     model.Path
	speed    float64 // m/s
	interval time.Duration
	step     float64 // meters between samples
	now      func() time.Time
}

// ReplayOption represents a configuration option of the Replay.
type ReplayOption func(r *Replay) error

// WithSpeed sets the driving speed in km/h. Default is 40 km/h.
func WithSpeed(kmh float64) ReplayOption {
	return func(r *Replay) error {
		if kmh <= 0 {
			return fmt.Errorf("speed (%v km/h) must be positive", kmh)
		}
		r.speed = kmh / 3.6
		return nil
	}
}

// WithInterval sets the wall clock time between two samples. Zero
// interval emits the samples as fast as they are consumed, but keeps
// their timestamps one second apart. Default is one second.
func WithInterval(d time.Duration) ReplayOption {
	return func(r *Replay) error {
		if d < 0 {
			return fmt.Errorf("interval (%v) must not be negative", d)
		}
		r.interval = d
		return nil
	}
}

// WithClock replaces time.Now for stamping the samples.
func WithClock(now func() time.Time) ReplayOption {
	return func(r *Replay) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		r.now = now
		return nil
	}
}

// NewReplay instantiates a Replay source for the path.
func NewReplay(path model.Path, opts ...ReplayOption) (*Replay, error) {
	if len(path) == 0 {
		return nil, errors.New("empty replay path")
	}
	r := &Replay{
		path:     path.Clone(),
		speed:    40 / 3.6,
		interval: time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	r.step = r.speed * r.period().Seconds()
	return r, nil
}

func (r *Replay) period() time.Duration {
	if r.interval == 0 {
		return time.Second
	}
	return r.interval
}

// Simulated implements repo.LocationSource.
func (r *Replay) Simulated() bool {
	return true
}

// Samples computes all samples of the replay, stamping the first one
// with start.
func (r *Replay) Samples(start time.Time) []model.LocationSample {
	var out []model.LocationSample
	speed := r.speed
	emit := func(c model.Coordinate, heading *float64) {
		out = append(out, model.LocationSample{
			Coordinate: c,
			Speed:      &speed,
			Heading:    heading,
			Timestamp:  start.Add(time.Duration(len(out)) * r.period()),
		})
	}
	var last *float64
	carry := 0.0
	for i := 0; i+1 < len(r.path); i++ {
		a, b := r.path[i], r.path[i+1]
		d := geo.Distance(a, b)
		h := geo.Bearing(a, b)
		s := carry
		for ; s < d-nearVertex; s += r.step {
			h := h
			emit(geo.Offset(a, h, s), &h)
		}
		carry = max(s-d, 0)
		if d > 0 {
			last = &h
		}
	}
	emit(r.path[len(r.path)-1], last)
	return out
}

// Subscribe implements repo.LocationSource.
func (r *Replay) Subscribe(
	ctx context.Context,
) (<-chan model.LocationSample, error) {
	samples := r.Samples(r.now())
	ch := make(chan model.LocationSample)
	go func() {
		defer close(ch)
		var tick <-chan time.Time
		if r.interval > 0 {
			t := time.NewTicker(r.interval)
			defer t.Stop()
			tick = t.C
		}
		for i, smp := range samples {
			if i > 0 && tick != nil {
				select {
				case <-ctx.Done():
					return
				case <-tick:
				}
			}
			select {
			case <-ctx.Done():
				return
			case ch <- smp:
			}
		}
	}()
	return ch, nil
}
