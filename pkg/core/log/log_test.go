// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func captureDefault(t *testing.T, level slog.Level) *bytes.Buffer {
	buf := &bytes.Buffer{}
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	slog.SetDefault(slog.New(h))
	return buf
}

func TestLevelsAndAttrs(t *testing.T) {
	buf := captureDefault(t, slog.LevelInfo)
	ctx := context.Background()
	log.Debug(ctx, "hidden")
	log.Warn(ctx, "saving markers failed",
		log.Err("err", errors.New("disk full")),
		log.Coord("pos", model.Coordinate{Lat: 1.5, Lng: 2.25}),
	)
	log.Info(ctx, "resolved", log.Limit("limit", model.UnknownSpeedLimit("")))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `level=WARN msg="saving markers failed" err="disk full" pos.lat=1.5 pos.lng=2.25`)
	assert.Contains(t, out, "limit.value=unknown")
}

func TestNilErr(t *testing.T) {
	assert.Equal(t, "no-error", log.Err("err", nil).Value.String())
}

func TestSetup(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	buf := &bytes.Buffer{}
	_, err := log.Setup(buf, "json", "warn")
	assert.NoError(t, err)
	log.Info(context.Background(), "dropped")
	log.Error(context.Background(), "kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	_, err = log.Setup(buf, "xml", "info")
	assert.Error(t, err)
	_, err = log.Setup(buf, "text", "loud")
	assert.Error(t, err)
}
