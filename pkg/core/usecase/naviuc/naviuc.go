// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package naviuc contains the navigation Engine which combines the
// route progress, speed limit, feature proximity, and heading use cases
// into one consistent state.
//
// The engine keeps a single State value which is only changed by the
// pure Reducer.Reduce transitions. Transitions are serialized by a
// mutex, so each location sample is completely applied before the next
// one is considered. Network lookups are requested by the transitions,
// performed in their own goroutines with a timeout, and reported back
// as events. At most one lookup of each kind is in flight. Results of
// lookups which were issued before the last start or stop are dropped.
package naviuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/navengine/pkg/core/cerr"
	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/momeni/navengine/pkg/core/usecase/featureuc"
)

// ErrNoPosition indicates that an operation needs the vehicle position
// while no location sample has been applied yet.
var ErrNoPosition = errors.New("vehicle position is not known yet")

// SpeedResolver resolves the speed limit of a position. It is
// implemented by the speeduc.UseCase.
type SpeedResolver interface {
	Resolve(
		ctx context.Context, pos model.Coordinate, heading float64,
	) model.ResolvedSpeedLimit
}

// MarkerSaver stores a user-taught speed marker. It is implemented by
// the memoryuc.UseCase.
type MarkerSaver interface {
	Save(
		ctx context.Context,
		pos model.Coordinate,
		heading, speed float64,
		roadName string,
	) (*model.SpeedMarker, error)
}

// Engine is the navigation state engine. It is safe for concurrent
// use; all methods are serialized.
type Engine struct {
	limits   SpeedResolver
	markers  MarkerSaver
	features repo.FeatureFeed
	proxim   *featureuc.UseCase
	reducer  Reducer

	limitDisplacement   float64
	featureDisplacement float64
	featureRadius       float64
	limitTimeout        time.Duration
	featureTimeout      time.Duration
	onAlert             func(context.Context, model.Alert)

	mu      sync.Mutex
	state   State
	pending map[LookupKind]context.CancelFunc
	lookups sync.WaitGroup
}

// New instantiates a navigation Engine. The speed resolver, marker
// saver, features feed, and feature proximity use case are required.
// By default, the speed limit is looked up after 30m displacements
// with a 3s timeout and the features are fetched within 1000m after
// 300m displacements with a 5s timeout.
func New(
	limits SpeedResolver,
	markers MarkerSaver,
	features repo.FeatureFeed,
	proxim *featureuc.UseCase,
	opts ...Option,
) (*Engine, error) {
	e := &Engine{
		limits:   limits,
		markers:  markers,
		features: features,
		proxim:   proxim,
		pending:  make(map[LookupKind]context.CancelFunc),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if e.limitDisplacement == 0 {
		e.limitDisplacement = 30
	}
	if e.featureDisplacement == 0 {
		e.featureDisplacement = 300
	}
	if e.featureRadius == 0 {
		e.featureRadius = 1000
	}
	if e.limitTimeout == 0 {
		e.limitTimeout = 3 * time.Second
	}
	if e.featureTimeout == 0 {
		e.featureTimeout = 5 * time.Second
	}
	if e.onAlert == nil {
		e.onAlert = func(context.Context, model.Alert) {}
	}
	e.reducer = NewReducer(proxim, e.limitDisplacement, e.featureDisplacement)
	e.state.GPS = model.GPSStatusSeeking
	return e, nil
}

// Start starts a new navigation session along path, replacing the
// active session (if any). An empty path starts a free driving session
// in which only the speed limit and features are tracked.
func (e *Engine) Start(ctx context.Context, path model.Path) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLookups()
	sid := uuid.New()
	snap := e.apply(ctx, StartEvent{Session: sid, Path: path.Clone()})
	log.Info(ctx, "navigation started",
		slog.String("session", sid.String()),
		slog.Int("points", len(path)),
	)
	return snap
}

// Stop stops the active session, canceling its pending lookups and
// discarding its route state. Speed markers are not affected.
func (e *Engine) Stop(ctx context.Context) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLookups()
	if e.state.Active {
		log.Info(ctx, "navigation stopped",
			slog.String("session", e.state.Session.String()),
		)
	}
	return e.apply(ctx, StopEvent{})
}

// Update applies the smp location sample and returns the resulting
// snapshot. Alerts which are reported by the returned snapshot are
// considered as delivered and will not be reported again.
func (e *Engine) Update(
	ctx context.Context, smp model.LocationSample, simulated bool,
) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.apply(ctx, LocationEvent{Sample: smp, Simulated: simulated})
	e.state.Alerts = nil
	return snap
}

// CycleViewMode switches the view mode to its next value.
func (e *Engine) CycleViewMode(ctx context.Context) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(ctx, CycleViewModeEvent{})
}

// Snapshot returns the current outputs without changing the state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshotOf(&e.state)
}

// Teach saves the speed (km/h) as a user-taught marker at the current
// position and heading, and applies it as the current speed limit.
// The name of the currently known road is stored with the marker.
func (e *Engine) Teach(ctx context.Context, speed float64) (*model.SpeedMarker, error) {
	e.mu.Lock()
	if e.state.Position == nil {
		e.mu.Unlock()
		return nil, cerr.Conflict(ErrNoPosition)
	}
	pos := *e.state.Position
	heading := e.state.DeviceHeading
	road := e.state.Limit.RoadName
	e.mu.Unlock()

	m, err := e.markers.Save(ctx, pos, heading, speed, road)
	if err != nil {
		return nil, fmt.Errorf("saving speed marker: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if cancel, ok := e.pending[LookupLimit]; ok {
		cancel()
		delete(e.pending, LookupLimit)
	}
	e.apply(ctx, MarkerTaughtEvent{Marker: *m})
	return m, nil
}

// Run subscribes to src and applies its samples one at a time until
// src is exhausted or ctx is canceled. The sink function (if not nil)
// receives the snapshot of every sample. It returns the ctx error if
// ctx was canceled.
func (e *Engine) Run(
	ctx context.Context, src repo.LocationSource, sink func(Snapshot),
) error {
	ch, err := src.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to location source: %w", err)
	}
	sim := src.Simulated()
	for smp := range ch {
		snap := e.Update(ctx, smp, sim)
		if sink != nil {
			sink(snap)
		}
	}
	return ctx.Err()
}

// Wait blocks until all in-flight lookups complete. It is useful for
// tests and for draining before a shutdown.
func (e *Engine) Wait() {
	e.lookups.Wait()
}

// Close cancels the in-flight lookups and waits for them.
func (e *Engine) Close() {
	e.mu.Lock()
	e.cancelLookups()
	e.mu.Unlock()
	e.lookups.Wait()
}

// apply runs one transition while e.mu is locked, delivers its new
// alerts to the alert handler, and dispatches its lookups.
func (e *Engine) apply(ctx context.Context, ev Event) Snapshot {
	prevAlerts := len(e.state.Alerts)
	next, lookups := e.reducer.Reduce(e.state, ev)
	e.state = next
	for _, a := range next.Alerts[prevAlerts:] {
		log.Info(ctx, "navigation alert", slog.String("kind", string(a.Kind)))
		e.onAlert(ctx, a)
	}
	for _, l := range lookups {
		e.dispatch(l)
	}
	return snapshotOf(&e.state)
}

func (e *Engine) cancelLookups() {
	for k, cancel := range e.pending {
		cancel()
		delete(e.pending, k)
	}
}

// dispatch starts the l lookup in a new goroutine. Lookups are not
// bound to the context of the request which triggered them, so they
// may outlive it.
func (e *Engine) dispatch(l Lookup) {
	timeout := e.limitTimeout
	if l.Kind == LookupFeatures {
		timeout = e.featureTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	e.pending[l.Kind] = cancel
	e.lookups.Add(1)
	go func() {
		defer e.lookups.Done()
		defer cancel()
		ev := e.perform(ctx, l)
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.current(l) {
			delete(e.pending, l.Kind)
		}
		e.apply(ctx, ev)
	}()
}

// current reports whether l was issued by the current state, so its
// cancellation handle is still the pending one.
func (e *Engine) current(l Lookup) bool {
	if l.Generation != e.state.Generation {
		return false
	}
	return l.Kind != LookupLimit || l.Epoch == e.state.LimitEpoch
}

func (e *Engine) perform(ctx context.Context, l Lookup) Event {
	switch l.Kind {
	case LookupLimit:
		lim := e.limits.Resolve(ctx, l.Position, l.Heading)
		log.Debug(ctx, "speed limit resolved", log.Limit("limit", lim))
		return LimitResolvedEvent{
			Generation: l.Generation, Epoch: l.Epoch, Limit: lim,
		}
	default:
		fs, err := e.features.FeaturesAround(ctx, l.Position, e.featureRadius)
		if err != nil {
			log.Debug(ctx, "features lookup failed",
				log.Err("err", err), log.Coord("pos", l.Position),
			)
			fs = nil
		}
		return FeaturesFetchedEvent{Generation: l.Generation, Features: fs}
	}
}
