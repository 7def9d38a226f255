// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakes is an internal helper for the test packages.
// It provides in-memory implementations of the repo interfaces, so the
// use cases may be tested without a database or network access.
// All fakes are safe for concurrent use.
package fakes

import (
	"context"
	"errors"
	"sync"

	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
)

// ErrInjected is returned by fakes which are configured to fail.
var ErrInjected = errors.New("injected failure")

// Markers is an in-memory repo.Markers. If FailSave is set, Save
// returns ErrInjected and keeps the previous collection. If Corrupt is
// set, Load reports an unreadable collection.
type Markers struct {
	mu       sync.Mutex
	stored   []model.SpeedMarker
	present  bool
	FailSave bool
	Corrupt  bool
	Saves    int
}

// NewMarkers returns a Markers fake which is pre-filled with mm.
func NewMarkers(mm ...model.SpeedMarker) *Markers {
	m := &Markers{}
	if mm != nil {
		m.stored = append([]model.SpeedMarker(nil), mm...)
		m.present = true
	}
	return m
}

// Load implements repo.Markers.
func (m *Markers) Load(context.Context) ([]model.SpeedMarker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.Corrupt:
		return nil, errors.New("corrupt record")
	case !m.present:
		return nil, repo.ErrNotFound
	}
	return append([]model.SpeedMarker(nil), m.stored...), nil
}

// Save implements repo.Markers.
func (m *Markers) Save(_ context.Context, mm []model.SpeedMarker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave {
		return ErrInjected
	}
	m.stored = append([]model.SpeedMarker(nil), mm...)
	m.present = true
	m.Corrupt = false
	m.Saves++
	return nil
}

// Stored returns a copy of the persisted collection.
func (m *Markers) Stored() []model.SpeedMarker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.SpeedMarker(nil), m.stored...)
}

// RoadFeed is a repo.RoadFeed returning fixed Ways or Err. If Block is
// set, calls wait until their context is done.
type RoadFeed struct {
	mu    sync.Mutex
	Ways  []model.RoadWay
	Err   error
	Block bool
	Calls int
}

// WaysAround implements repo.RoadFeed.
func (f *RoadFeed) WaysAround(
	ctx context.Context, _ model.Coordinate, _ float64,
) ([]model.RoadWay, error) {
	f.mu.Lock()
	f.Calls++
	ways, err, block := f.Ways, f.Err, f.Block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return ways, err
}

// CallCount returns the number of WaysAround calls.
func (f *RoadFeed) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// FeatureFeed is a repo.FeatureFeed returning fixed Features or Err.
type FeatureFeed struct {
	mu       sync.Mutex
	Features []model.MapFeature
	Err      error
	Calls    int
}

// FeaturesAround implements repo.FeatureFeed.
func (f *FeatureFeed) FeaturesAround(
	context.Context, model.Coordinate, float64,
) ([]model.MapFeature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	return f.Features, f.Err
}

// CallCount returns the number of FeaturesAround calls.
func (f *FeatureFeed) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// KVStore is an in-memory repo.KVStore.
type KVStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewKVStore returns an empty KVStore.
func NewKVStore() *KVStore {
	return &KVStore{m: make(map[string][]byte)}
}

// Get implements repo.KVStore.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements repo.KVStore.
func (s *KVStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string][]byte)
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}
