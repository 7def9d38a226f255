// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/navengine/pkg/adapter/config"
	"github.com/momeni/navengine/pkg/core/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
)

var routeOpts struct {
	from, to string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan a driving route and print it as GeoJSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		from, err := ParseCoord(routeOpts.from)
		if err != nil {
			return err
		}
		to, err := ParseCoord(routeOpts.to)
		if err != nil {
			return err
		}
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
		}
		path, err := c.Feeds.NewRouter().Route(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("planning route: %w", err)
		}
		ls := make(orb.LineString, 0, len(path))
		for _, p := range path {
			ls = append(ls, orb.Point{p.Lng, p.Lat})
		}
		f := geojson.NewFeature(ls)
		f.Properties["length"] = geo.PathLength(path)
		b, err := json.Marshal(f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the normalized configuration settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
		}
		b, err := c.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	f := routeCmd.Flags()
	f.StringVar(&routeOpts.from, "from", "", "origin as lat,lng")
	f.StringVar(&routeOpts.to, "to", "", "destination as lat,lng")
	_ = routeCmd.MarkFlagRequired("from")
	_ = routeCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(routeCmd, configCmd)
}
