// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memoryuc_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/momeni/navengine/internal/test/fakes"
	"github.com/momeni/navengine/pkg/core/cerr"
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/memoryuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = model.Coordinate{Lat: 10.7769, Lng: 106.7009}

func marker(c model.Coordinate, heading, speed float64) model.SpeedMarker {
	return model.SpeedMarker{Lat: c.Lat, Lng: c.Lng, Heading: heading, Speed: speed}
}

func fixedClock(ms int64) memoryuc.Option {
	return memoryuc.WithClock(func() time.Time {
		return time.UnixMilli(ms)
	})
}

func newUseCase(t *testing.T, mr *fakes.Markers, opts ...memoryuc.Option) *memoryuc.UseCase {
	uc, err := memoryuc.New(mr, opts...)
	require.NoError(t, err)
	return uc
}

func TestSaveDeduplicates(t *testing.T) {
	near := marker(geo.Offset(base, 0, 30), 270, 40)
	far := marker(geo.Offset(base, 0, 80), 90, 60)
	mr := fakes.NewMarkers(near, far)
	uc := newUseCase(t, mr, fixedClock(1700000000000))

	m, err := uc.Save(context.Background(), base, 90, 50, "Vo Van Kiet")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), m.Timestamp)
	stored := mr.Stored()
	require.Len(t, stored, 2)
	assert.Equal(t, far, stored[0], "markers beyond 50m are kept")
	assert.Equal(t, *m, stored[1], "new marker is appended last")
	for _, o := range stored[:1] {
		assert.Greater(t, geo.Distance(o.Coordinate(), base), 50.0)
	}
}

func TestSaveEvictsOldest(t *testing.T) {
	mm := make([]model.SpeedMarker, 0, 500)
	for i := 0; i < 500; i++ {
		mm = append(mm, marker(geo.Offset(base, 0, float64(i)*100), 0, 60))
	}
	mr := fakes.NewMarkers(mm...)
	uc := newUseCase(t, mr)

	_, err := uc.Save(context.Background(), geo.Offset(base, 180, 5000), 0, 80, "")
	require.NoError(t, err)
	stored := mr.Stored()
	assert.Len(t, stored, 500)
	assert.Equal(t, mm[1], stored[0], "oldest marker is evicted")
	assert.Equal(t, 80.0, stored[499].Speed)
}

func TestSaveWithCapacityOption(t *testing.T) {
	mr := fakes.NewMarkers()
	uc := newUseCase(t, mr, memoryuc.WithCapacity(3))
	for i := 0; i < 5; i++ {
		_, err := uc.Save(context.Background(),
			geo.Offset(base, 90, float64(i)*1000), 0, float64(10*(i+1)), "")
		require.NoError(t, err)
	}
	stored := mr.Stored()
	require.Len(t, stored, 3)
	assert.Equal(t, []float64{30, 40, 50}, []float64{
		stored[0].Speed, stored[1].Speed, stored[2].Speed,
	})
}

func TestSaveRejectsInvalidInput(t *testing.T) {
	mr := fakes.NewMarkers()
	uc := newUseCase(t, mr)
	for _, tc := range []struct {
		name           string
		pos            model.Coordinate
		heading, speed float64
	}{
		{"zero speed", base, 0, 0},
		{"negative speed", base, 0, -5},
		{"nan speed", base, 0, math.NaN()},
		{"nan heading", base, math.NaN(), 50},
		{"nan position", model.Coordinate{Lat: math.NaN()}, 0, 50},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := uc.Save(context.Background(), tc.pos, tc.heading, tc.speed, "")
			assert.Nil(t, m)
			var ce *cerr.Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
		})
	}
	assert.Zero(t, mr.Saves)
}

func TestSavePersistenceFailureIsNotFatal(t *testing.T) {
	old := marker(geo.Offset(base, 0, 10), 0, 40)
	mr := fakes.NewMarkers(old)
	mr.FailSave = true
	uc := newUseCase(t, mr)

	m, err := uc.Save(context.Background(), base, 0, 70, "")
	require.NoError(t, err)
	assert.Equal(t, 70.0, m.Speed)
	assert.Equal(t, []model.SpeedMarker{old}, mr.Stored(),
		"previous collection is left intact")
}

func TestCorruptCollectionReadsAsEmpty(t *testing.T) {
	mr := fakes.NewMarkers(marker(base, 0, 40))
	mr.Corrupt = true
	uc := newUseCase(t, mr)
	ctx := context.Background()

	assert.Nil(t, uc.FindNearby(ctx, base, 0))
	assert.Empty(t, uc.List(ctx))
	_, err := uc.Save(ctx, geo.Offset(base, 0, 500), 0, 60, "")
	require.NoError(t, err)
	assert.Len(t, mr.Stored(), 1, "corrupt record is replaced")
}

func TestFindNearbyHeadingCone(t *testing.T) {
	m := marker(geo.Offset(base, 0, 100), 90, 60)
	uc := newUseCase(t, fakes.NewMarkers(m))
	ctx := context.Background()
	for _, tc := range []struct {
		heading float64
		found   bool
	}{
		{90, true},
		{130, true},
		{50, true},
		{134.9, true},
		{135, false},
		{45, false},
		{270, false},
	} {
		got := uc.FindNearby(ctx, base, tc.heading)
		if tc.found {
			if assert.NotNil(t, got, "heading %v", tc.heading) {
				assert.Equal(t, m, *got)
			}
		} else {
			assert.Nil(t, got, "heading %v", tc.heading)
		}
	}
}

func TestFindNearbyRadiusAndClosest(t *testing.T) {
	tooFar := marker(geo.Offset(base, 0, 201), 0, 30)
	mid := marker(geo.Offset(base, 0, 150), 10, 40)
	closest := marker(geo.Offset(base, 180, 60), 350, 50)
	opposite := marker(geo.Offset(base, 90, 5), 180, 90)
	uc := newUseCase(t, fakes.NewMarkers(tooFar, mid, closest, opposite))

	got := uc.FindNearby(context.Background(), base, 0)
	require.NotNil(t, got)
	assert.Equal(t, closest, *got)

	uc = newUseCase(t, fakes.NewMarkers(tooFar))
	assert.Nil(t, uc.FindNearby(context.Background(), base, 0))
}

func TestFindNearbyTieKeepsFirst(t *testing.T) {
	a := marker(geo.Offset(base, 0, 100), 0, 40)
	b := a
	b.Speed = 60
	uc := newUseCase(t, fakes.NewMarkers(a, b))
	got := uc.FindNearby(context.Background(), base, 0)
	require.NotNil(t, got)
	assert.Equal(t, 40.0, got.Speed)
}

func TestClearAndList(t *testing.T) {
	mr := fakes.NewMarkers(marker(base, 0, 40))
	uc := newUseCase(t, mr)
	ctx := context.Background()
	assert.Len(t, uc.List(ctx), 1)
	require.NoError(t, uc.Clear(ctx))
	assert.Empty(t, uc.List(ctx))

	mr.FailSave = true
	assert.ErrorIs(t, uc.Clear(ctx), fakes.ErrInjected)
}

func TestInvalidOptions(t *testing.T) {
	for _, opt := range []memoryuc.Option{
		memoryuc.WithCapacity(0),
		memoryuc.WithDedupRadius(-1),
		memoryuc.WithSearchRadius(math.Inf(1)),
		memoryuc.WithHeadingTolerance(0),
		memoryuc.WithHeadingTolerance(181),
		memoryuc.WithClock(nil),
	} {
		_, err := memoryuc.New(fakes.NewMarkers(), opt)
		assert.Error(t, err)
	}
	_, err := memoryuc.New(fakes.NewMarkers(),
		memoryuc.WithCapacity(5), memoryuc.WithCapacity(6))
	assert.Error(t, err, "options may not be repeated")
}
