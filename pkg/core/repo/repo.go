// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo contains the interfaces which are implemented by the
// adapters layer and consumed by the use cases layer. They describe
// the external collaborators of the navigation engine, namely the
// key/value persistence, the road attributes and features feeds, the
// routing service, and the location source.
// Use cases depend on these interfaces, so they can be tested with
// in-memory fakes and adapters can be replaced freely.
package repo

import (
	"context"
	"errors"
)

// ErrNotFound indicates that a requested key has no stored value.
var ErrNotFound = errors.New("not found")

// KVStore is a minimal persistent key/value store. Put replaces the
// whole value of a key atomically, so a failed Put leaves the previous
// value untouched.
type KVStore interface {
	// Get returns the value of the key, or ErrNotFound if it is
	// missing.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value for key, replacing its previous value.
	Put(ctx context.Context, key string, value []byte) error
}
