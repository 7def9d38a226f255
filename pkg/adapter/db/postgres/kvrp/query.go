// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package kvrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momeni/navengine/pkg/adapter/db/postgres"
	"github.com/momeni/navengine/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Schema creates the kv_records table if it does not exist.
const Schema = `CREATE TABLE IF NOT EXISTS kv_records (
	name       TEXT PRIMARY KEY,
	payload    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type gRecord struct {
	Name      string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

func (gr *gRecord) TableName() string {
	return "kv_records"
}

// Get queries the payload of the name record.
func Get[Q postgres.Queryer](ctx context.Context, q Q, name string) ([]byte, error) {
	var gr gRecord
	err := q.GORM(ctx).Where("name = ?", name).Take(&gr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, repo.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.Payload, nil
}

// Put inserts the name record or replaces its payload.
func Put[Q postgres.Queryer](ctx context.Context, q Q, name string, payload []byte) error {
	gr := &gRecord{Name: name, Payload: payload, UpdatedAt: time.Now()}
	err := q.GORM(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(gr).Error
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}
