// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/momeni/navengine/pkg/core/usecase/memoryuc"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/momeni/navengine/pkg/core/usecase/speeduc"
	"gopkg.in/yaml.v3"
)

// App holds the instantiated components of the navigation engine.
// It must be closed after use.
type App struct {
	Store  Store
	Memory *memoryuc.UseCase
	Speed  *speeduc.UseCase
	Engine *naviuc.Engine
	Router repo.Router
}

// NewApp opens the configured store, instantiates the external feeds
// clients, and wires them into the use cases. The extra options are
// passed to the navigation engine, e.g., in order to observe alerts.
func (c *Config) NewApp(ctx context.Context, extra ...naviuc.Option) (*App, error) {
	store, err := c.Database.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	a, err := c.newApp(store, extra...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info(ctx, "components are ready",
		log.Valuer("speed-timeout", c.Usecases.Speed.Timeout),
		log.Valuer("feature-timeout", c.Usecases.Navigation.FeatureTimeout),
	)
	return a, nil
}

func (c *Config) newApp(store Store, extra ...naviuc.Option) (*App, error) {
	feed, err := c.Feeds.NewOverpass()
	if err != nil {
		return nil, fmt.Errorf("creating overpass client: %w", err)
	}
	a := &App{Store: store, Router: c.Feeds.NewRouter()}
	uc := &c.Usecases
	a.Memory, err = uc.Memory.NewUseCase(c.Database.NewMarkersRepo(store))
	if err != nil {
		return nil, fmt.Errorf("creating memory use case: %w", err)
	}
	a.Speed, err = uc.Speed.NewUseCase(a.Memory, feed)
	if err != nil {
		return nil, fmt.Errorf("creating speed use case: %w", err)
	}
	proxim, err := uc.Navigation.NewFeatureUseCase()
	if err != nil {
		return nil, fmt.Errorf("creating feature use case: %w", err)
	}
	a.Engine, err = uc.Navigation.NewEngine(
		a.Speed, a.Memory, feed, proxim, a.Speed.Timeout(), extra...,
	)
	if err != nil {
		return nil, fmt.Errorf("creating navigation engine: %w", err)
	}
	return a, nil
}

// Close stops the in-flight lookups of the engine and closes the
// store.
func (a *App) Close() error {
	var errs []error
	if a.Engine != nil {
		a.Engine.Close()
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

// Marshal serializes the c settings as YAML, so the normalized
// settings can be reviewed.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
