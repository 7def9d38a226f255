// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package markersrp implements the repo.Markers interface by storing
// the whole speed markers collection as a single JSON document in a
// repo.KVStore. Replacing the document at once keeps the collection
// consistent even if the process is stopped in the middle of a save.
package markersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
)

// DefaultKey is the key of the markers document in the store.
const DefaultKey = "speed_markers"

// Repo is a repo.Markers backed by a repo.KVStore.
type Repo struct {
	kv  repo.KVStore
	key string
}

// New instantiates a Repo which keeps its document under key.
// An empty key is replaced by DefaultKey.
func New(kv repo.KVStore, key string) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{kv: kv, key: key}
}

// Load implements repo.Markers. A missing document is reported with
// repo.ErrNotFound and a malformed one with a decoding error.
func (r *Repo) Load(ctx context.Context) ([]model.SpeedMarker, error) {
	b, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %q: %w", r.key, err)
	}
	var mm []model.SpeedMarker
	if err := json.Unmarshal(b, &mm); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", r.key, err)
	}
	return mm, nil
}

// Save implements repo.Markers.
func (r *Repo) Save(ctx context.Context, mm []model.SpeedMarker) error {
	if mm == nil {
		mm = []model.SpeedMarker{}
	}
	b, err := json.Marshal(mm)
	if err != nil {
		return fmt.Errorf("encoding markers: %w", err)
	}
	if err := r.kv.Put(ctx, r.key, b); err != nil {
		return fmt.Errorf("writing %q: %w", r.key, err)
	}
	return nil
}
