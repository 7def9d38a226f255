// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/adapter/location"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/repo"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/spf13/cobra"
)

var simOpts struct {
	from, to string
	path     string
	replay   string
	paced    bool
	speed    float64
	interval time.Duration
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive along a path and print the navigation snapshots",
	Long: `Simulate starts a navigation session and feeds it with the
simulated location samples. Samples are generated by driving along a
routed trip (--from and --to), or a path which is read from a JSON
file (--path) as an array of {"lat": .., "lng": ..} objects. A recorded
drive may also be replayed from a JSON-lines file (--replay) as a
free drive. Every snapshot is printed as one JSON line.`,
	Args: cobra.NoArgs,
	RunE: simulate,
}

// ParseCoord parses a "lat,lng" pair.
func ParseCoord(s string) (model.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return model.Coordinate{}, fmt.Errorf("expected lat,lng: %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return model.Coordinate{}, fmt.Errorf("invalid latitude: %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return model.Coordinate{}, fmt.Errorf("invalid longitude: %q", parts[1])
	}
	return model.Coordinate{Lat: lat, Lng: lng}, nil
}

func readPath(name string) (model.Path, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var p model.Path
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", name, err)
	}
	return p, nil
}

func simulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	enc := json.NewEncoder(cmd.OutOrStdout())
	_, a, _, err := loadApp(ctx, naviuc.WithAlertHandler(logAlert))
	if err != nil {
		return err
	}
	defer a.Close()

	var path model.Path
	var src repo.LocationSource
	switch {
	case simOpts.replay != "":
		src = location.NewFile(simOpts.replay, simOpts.paced)
	case simOpts.path != "":
		if path, err = readPath(simOpts.path); err != nil {
			return err
		}
	case simOpts.from != "" && simOpts.to != "":
		from, err := ParseCoord(simOpts.from)
		if err != nil {
			return err
		}
		to, err := ParseCoord(simOpts.to)
		if err != nil {
			return err
		}
		if path, err = a.Router.Route(ctx, from, to); err != nil {
			return fmt.Errorf("planning route: %w", err)
		}
	default:
		return errors.New("one of --replay, --path, or --from/--to is needed")
	}
	if src == nil {
		src, err = location.NewReplay(
			path,
			location.WithSpeed(simOpts.speed),
			location.WithInterval(simOpts.interval),
		)
		if err != nil {
			return fmt.Errorf("creating replay: %w", err)
		}
	}
	a.Engine.Start(ctx, path)
	var encErr error
	err = a.Engine.Run(ctx, src, func(s naviuc.Snapshot) {
		if encErr == nil {
			encErr = enc.Encode(s)
		}
	})
	a.Engine.Stop(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, encErr)
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simOpts.from, "from", "", "routed trip origin as lat,lng")
	f.StringVar(&simOpts.to, "to", "", "routed trip destination as lat,lng")
	f.StringVar(&simOpts.path, "path", "", "JSON file of the path to drive")
	f.StringVar(&simOpts.replay, "replay", "", "JSON-lines file of a recorded drive")
	f.BoolVar(&simOpts.paced, "paced", false, "honor the recorded timestamps")
	f.Float64Var(&simOpts.speed, "speed", 40, "driving speed in km/h")
	f.DurationVar(&simOpts.interval, "interval", time.Second,
		"time between samples, zero for no delay")
	rootCmd.AddCommand(simulateCmd)
}
