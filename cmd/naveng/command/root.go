// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the naveng
// navigation engine. Commands are organized using the cobra library.
// The root command starts the REST API server itself while the other
// sub-commands replay drives, manage the taught speed markers, plan
// routes, and print the effective configuration.
//
//	./naveng [-c /path/of/config.yaml] [--addr :8080]  # start server
//	./naveng simulate --from 10.77,106.70 --to 10.78,106.71
//	./naveng simulate --path route.json --speed 60
//	./naveng simulate --replay drive.jsonl --paced
//	./naveng markers list
//	./naveng markers clear
//	./naveng route --from 10.77,106.70 --to 10.78,106.71
//	./naveng config
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/navengine/pkg/adapter/config"
	"github.com/momeni/navengine/pkg/adapter/restful/gin/routes"
	"github.com/momeni/navengine/pkg/core/log"
	"github.com/momeni/navengine/pkg/core/model"
	"github.com/momeni/navengine/pkg/core/usecase/naviuc"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "naveng",
	Short: "A driving navigation state engine",
	Long: `A driving navigation state engine which consumes the vehicle
location samples and keeps the route progress, the effective speed
limit, and the nearby traffic lights and cameras up to date.
Speed limits are resolved from the user-taught speed markers, a
registry of well-known roads, and the OpenStreetMap road tags, in
that order. The engine state is exposed through a REST API.`,
	RunE:         startWebServer,
	SilenceUsage: true,
}

// loadApp loads the configuration file, installs the default logger,
// and instantiates the application components.
func loadApp(
	ctx context.Context, extra ...naviuc.Option,
) (*config.Config, *config.App, *slog.Logger, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	l, err := log.Setup(os.Stderr, c.Log.Format, c.Log.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setting up logger: %w", err)
	}
	a, err := c.NewApp(ctx, extra...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating components: %w", err)
	}
	return c, a, l, nil
}

func logAlert(ctx context.Context, a model.Alert) {
	attrs := []slog.Attr{slog.String("kind", string(a.Kind))}
	if f := a.Feature; f != nil {
		attrs = append(attrs,
			slog.String("feature", f.Type.String()),
			slog.Float64("distance", f.Distance),
		)
	}
	if a.SpeedLimit != nil {
		attrs = append(attrs, slog.Int("limit", *a.SpeedLimit))
	}
	log.Info(ctx, "alert", attrs...)
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, a, l, err := loadApp(ctx, naviuc.WithAlertHandler(logAlert))
	if err != nil {
		return err
	}
	defer a.Close()
	e := c.Gin.NewEngine(l)
	routes.Register(e, routes.UseCases{
		Memory: a.Memory, Speed: a.Speed, Engine: a.Engine, Router: a.Router,
	})
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		log.Info(ctx, "serving REST API", slog.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()
	select {
	case err = <-errs:
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err = <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.Flags().StringVar(&addr, "addr", ":8080", "listening address")
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
