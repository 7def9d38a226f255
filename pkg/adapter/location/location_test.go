// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package location_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/navengine/pkg/adapter/location"
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan model.LocationSample) []model.LocationSample {
	t.Helper()
	var out []model.LocationSample
	timeout := time.After(5 * time.Second)
	for {
		select {
		case smp, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, smp)
		case <-timeout:
			t.Fatal("source did not finish")
		}
	}
}

func TestReplaySamples(t *testing.T) {
	a := model.Coordinate{Lat: 10.77, Lng: 106.70}
	b := geo.Offset(a, 90, 100)
	r, err := location.NewReplay(
		model.Path{a, b},
		location.WithSpeed(36), location.WithInterval(0),
	)
	require.NoError(t, err)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ss := r.Samples(start)
	require.Len(t, ss, 11, "10 m steps plus the final vertex")
	for i, s := range ss {
		assert.InDelta(t, float64(i)*10, geo.Distance(a, s.Coordinate), 0.5)
		assert.Equal(t, start.Add(time.Duration(i)*time.Second), s.Timestamp)
		require.True(t, s.HasHeading())
		assert.InDelta(t, 90, *s.Heading, 0.1)
		kmh, ok := s.SpeedKmh()
		assert.True(t, ok)
		assert.InDelta(t, 36, kmh, 1e-9)
	}
	assert.Equal(t, b, ss[10].Coordinate)
	assert.True(t, r.Simulated())
}

func TestReplaySinglePoint(t *testing.T) {
	r, err := location.NewReplay(model.Path{{Lat: 1, Lng: 2}})
	require.NoError(t, err)
	ss := r.Samples(time.Now())
	require.Len(t, ss, 1)
	assert.False(t, ss[0].HasHeading())

	_, err = location.NewReplay(nil)
	assert.Error(t, err)
	_, err = location.NewReplay(model.Path{{}}, location.WithSpeed(0))
	assert.Error(t, err)
	_, err = location.NewReplay(model.Path{{}}, location.WithClock(nil))
	assert.Error(t, err)
}

func TestReplaySubscribe(t *testing.T) {
	a := model.Coordinate{Lat: 10.77, Lng: 106.70}
	r, err := location.NewReplay(
		model.Path{a, geo.Offset(a, 0, 50)},
		location.WithSpeed(72000), location.WithInterval(time.Millisecond),
	)
	require.NoError(t, err)
	ch, err := r.Subscribe(context.Background())
	require.NoError(t, err)
	ss := collect(t, ch)
	assert.Len(t, ss, 4, "20 m steps plus the end")
}

func TestReplayCancel(t *testing.T) {
	a := model.Coordinate{Lat: 10.77, Lng: 106.70}
	r, err := location.NewReplay(
		model.Path{a, geo.Offset(a, 0, 10000)},
		location.WithInterval(time.Hour),
	)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := r.Subscribe(ctx)
	require.NoError(t, err)
	<-ch
	cancel()
	ss := collect(t, ch)
	assert.Empty(t, ss)
}

func TestFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "drive.jsonl")
	content := `{"lat":10.77,"lng":106.7,"speed":10,"heading":90,"timestamp":"2024-01-01T00:00:00Z"}

not json
{"lat":10.78,"lng":106.71,"timestamp":"2024-01-01T00:00:01Z"}
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	f := location.NewFile(p, false)
	ch, err := f.Subscribe(context.Background())
	require.NoError(t, err)
	ss := collect(t, ch)
	require.Len(t, ss, 2)
	assert.Equal(t, model.Coordinate{Lat: 10.77, Lng: 106.7}, ss[0].Coordinate)
	assert.True(t, ss[0].HasSpeed())
	assert.False(t, ss[1].HasSpeed())
	assert.False(t, ss[1].HasHeading())
	assert.True(t, f.Simulated())

	_, err = location.NewFile(filepath.Join(t.TempDir(), "missing"), false).
		Subscribe(context.Background())
	assert.Error(t, err)
}
