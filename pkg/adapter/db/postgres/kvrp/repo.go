// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package kvrp implements the repo.KVStore interface on a PostgreSQL
// table, so the speed markers of a server deployment may be shared by
// several engine processes.
package kvrp

import (
	"context"
	"fmt"

	"github.com/momeni/navengine/pkg/adapter/db/postgres"
	"github.com/momeni/navengine/pkg/core/repo"
)

// Store is a repo.KVStore which acquires a connection from its pool
// for each operation.
type Store struct {
	pool repo.Pool
}

// New instantiates a Store. The kv_records table must be created
// beforehand, e.g., using the Migrate function.
func New(p repo.Pool) *Store {
	return &Store{pool: p}
}

// Migrate creates the kv_records table if it is missing.
func Migrate(ctx context.Context, p repo.Pool) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := c.Exec(ctx, Schema); err != nil {
			return fmt.Errorf("creating kv_records table: %w", err)
		}
		return nil
	})
}

// Get implements the repo.KVStore interface.
func (s *Store) Get(ctx context.Context, key string) (v []byte, err error) {
	err = s.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = Get(ctx, c.(*postgres.Conn), key)
		return err
	})
	return v, err
}

// Put implements the repo.KVStore interface. The record is replaced in
// a transaction, so a failed Put keeps the previous payload.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return Put(ctx, tx.(*postgres.Tx), key, value)
		})
	})
}
