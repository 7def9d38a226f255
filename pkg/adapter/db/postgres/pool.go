// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL connection pool, connection,
// and transaction types which implement the repo.Pool, repo.Conn, and
// repo.Tx interfaces using GORM and the pgx driver. Repository packages
// (such as kvrp) may depend on GORM via the embedded *gorm.DB fields.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool represents a database connection pool.
type Pool struct {
	*gorm.DB
}

// slogWriter adapts the GORM logger output to the default slog logger.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	log.Warn(context.Background(), fmt.Sprintf(format, args...))
}

// NewPool connects to the url PostgreSQL database and verifies the
// connection by acquiring one connection from the pool.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
			// Set to false in order to log with replaced vars
			ParameterizedQueries: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// ConnHandler is an alias for the repo.ConnHandler.
type ConnHandler = repo.ConnHandler

// NoOpConnHandler is a connection handler which does nothing.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a connection from the pool, passes it to f, and
// releases it when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Close closes all connections of the pool.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
