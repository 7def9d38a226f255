// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/navengine/pkg/adapter/db/markersrp"
	"github.com/momeni/navengine/pkg/adapter/db/postgres"
	"github.com/momeni/navengine/pkg/adapter/db/postgres/kvrp"
	"github.com/momeni/navengine/pkg/adapter/db/sqlite"
	"github.com/momeni/navengine/pkg/core/repo"
)

// Database selects and configures the speed markers storage.
// The sqlite driver keeps them in a local file, while the postgres
// driver keeps them in a shared PostgreSQL database.
type Database struct {
	Driver   string    `yaml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	Path     string    `yaml:"path"` // sqlite database file
	Key      string    `yaml:"key"`  // markers document key
	Postgres *Postgres `yaml:"postgres,omitempty"`
}

// Postgres contains the PostgreSQL connection information. The role
// password is read from the .pgpass file in the PassDir folder, which
// should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
type Postgres struct {
	Host    string `yaml:"host" validate:"required"`
	Port    int    `yaml:"port" validate:"required,gt=0,lte=65535"`
	Name    string `yaml:"name" validate:"required"`
	Role    string `yaml:"role" validate:"required"`
	PassDir string `yaml:"pass-dir" validate:"required"`
}

// ValidateAndNormalize fills the default driver, path, and key, and
// checks that the postgres driver has its connection information.
func (d *Database) ValidateAndNormalize() error {
	if d.Driver == "" {
		d.Driver = "sqlite"
	}
	if d.Key == "" {
		d.Key = markersrp.DefaultKey
	}
	switch d.Driver {
	case "sqlite":
		if d.Path == "" {
			d.Path = "naveng.db"
		}
	case "postgres":
		if d.Postgres == nil {
			return errors.New("postgres driver needs postgres settings")
		}
	}
	return nil
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value. The
// password is read from the given path file which may contain empty
// or #-commented lines in addition to the pgpass lines.
func (p Postgres) ConnectionURL(path string) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", p.Host, p.Port, p.Name, p.Role)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(p.Role, pass),
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:   p.Name,
	}
	return u.String(), nil
}

// Store is an opened key/value store which must be closed after use.
type Store interface {
	repo.KVStore
	io.Closer
}

type pgStore struct {
	*kvrp.Store
	pool *postgres.Pool
}

func (s pgStore) Close() error {
	return s.pool.Close()
}

// OpenStore opens the configured key/value store, creating its table
// if it is missing.
func (d Database) OpenStore(ctx context.Context) (Store, error) {
	if d.Driver != "postgres" {
		s, err := sqlite.Open(ctx, d.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	}
	path := filepath.Join(d.Postgres.PassDir, ".pgpass")
	u, err := d.Postgres.ConnectionURL(path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	pool, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := kvrp.Migrate(ctx, pool); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}
	return pgStore{Store: kvrp.New(pool), pool: pool}, nil
}

// NewMarkersRepo instantiates the markers repository over kv.
func (d Database) NewMarkersRepo(kv repo.KVStore) repo.Markers {
	return markersrp.New(kv, d.Key)
}
