// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Speed markers management actions",
	Long: `Speed markers are the user-taught speed limits which take
precedence over the other speed limit sources. They may be listed or
cleared by sub-commands.`,
}

var markersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the speed markers as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, a, _, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a.Memory.List(ctx))
	},
}

var markersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all speed markers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, a, _, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		n := len(a.Memory.List(ctx))
		if err := a.Memory.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d markers\n", n)
		return nil
	},
}

func init() {
	markersCmd.AddCommand(markersListCmd, markersClearCmd)
	rootCmd.AddCommand(markersCmd)
}
