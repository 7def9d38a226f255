// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package location

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
)

// File is a repo.LocationSource which replays a recorded drive.
// Each line of the file is one JSON encoded model.LocationSample and
// blank or malformed lines are skipped.
type File struct {
	path   string
	paced  bool
	maxGap time.Duration
}

// NewFile instantiates a File source for path. If paced is true,
// samples are delayed by the difference of their timestamps (capped
// at five seconds), otherwise they are emitted as fast as they are
// consumed.
func NewFile(path string, paced bool) *File {
	return &File{path: path, paced: paced, maxGap: 5 * time.Second}
}

// Simulated implements repo.LocationSource.
func (f *File) Simulated() bool {
	return true
}

// Subscribe implements repo.LocationSource. The file is opened
// eagerly, so a missing file is reported before any sample.
func (f *File) Subscribe(
	ctx context.Context,
) (<-chan model.LocationSample, error) {
	fd, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", f.path, err)
	}
	ch := make(chan model.LocationSample)
	go func() {
		defer close(ch)
		defer fd.Close()
		sc := bufio.NewScanner(fd)
		var prev time.Time
		for n := 1; sc.Scan(); n++ {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			var smp model.LocationSample
			if err := json.Unmarshal(line, &smp); err != nil {
				log.Warn(
					ctx, "skipping malformed sample",
					slog.String("file", f.path), slog.Int("line", n),
					log.Err("err", err),
				)
				continue
			}
			if f.paced && !prev.IsZero() && smp.Timestamp.After(prev) {
				gap := min(smp.Timestamp.Sub(prev), f.maxGap)
				select {
				case <-ctx.Done():
					return
				case <-time.After(gap):
				}
			}
			prev = smp.Timestamp
			select {
			case <-ctx.Done():
				return
			case ch <- smp:
			}
		}
		if err := sc.Err(); err != nil {
			log.Error(
				ctx, "reading samples failed",
				slog.String("file", f.path), log.Err("err", err),
			)
		}
	}()
	return ch, nil
}
