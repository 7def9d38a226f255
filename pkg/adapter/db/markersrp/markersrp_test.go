// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package markersrp_test

import (
	"context"
	"strings"
	"testing"

	"github.com/momeni/navengine/internal/test/fakes"
	"github.com/momeni/navengine/pkg/adapter/db/markersrp"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	r := markersrp.New(fakes.NewKVStore(), "")
	_, err := r.Load(context.Background())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	kv := fakes.NewKVStore()
	r := markersrp.New(kv, "markers")
	mm := []model.SpeedMarker{
		{Lat: 10.7769, Lng: 106.7009, Heading: 45, Speed: 60, Timestamp: 1},
		{
			Lat: 10.78, Lng: 106.71, Heading: 270, Speed: 40,
			Timestamp: 2, RoadName: "Võ Văn Kiệt",
		},
	}
	require.NoError(t, r.Save(ctx, mm))
	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, mm, got)

	raw, err := kv.Get(ctx, "markers")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"roadName":"Võ Văn Kiệt"`)
	assert.Equal(t, 1, strings.Count(string(raw), "roadName"),
		"an empty road name is omitted")

	require.NoError(t, r.Save(ctx, nil))
	got, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := fakes.NewKVStore()
	require.NoError(t, kv.Put(ctx, markersrp.DefaultKey, []byte("{oops")))
	_, err := markersrp.New(kv, "").Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repo.ErrNotFound)
}
