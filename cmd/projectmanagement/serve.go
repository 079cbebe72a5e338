// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/observability"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the core process with health and metrics endpoints",
		Long: `Connect to the database, seed the built-in roles and keep the services
running until SIGINT or SIGTERM. Readiness turns green once startup completes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, deps)
		},
	}
}

func runServe(cmd *cobra.Command, opts *globalOptions, deps *Deps) error {
	cfg, logger, err := loadAppConfig(cmd, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var ready atomic.Bool
	var obsServer ObservabilityServer
	var metrics *observability.Metrics
	if cfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr, ready.Load)
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").With("addr", cfg.Metrics.Addr).Wrap(err)
		}
		defer stopObservability(obsServer, logger)
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability", logger)
		metrics = obsServer.Metrics()
	}

	roles, closeRoles, err := deps.OpenRoles(ctx, cfg, logger)
	if err != nil {
		return err
	}
	seedErr := auth.SeedRoles(ctx, roles, logger)
	closeRoles()
	if seedErr != nil {
		return seedErr
	}

	_, closeApp, err := deps.OpenApp(ctx, cfg, metrics, logger)
	if err != nil {
		return err
	}
	defer closeApp()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ready.Store(true)
	cmd.Println("Core process started")
	logger.Info("core process ready", "metrics_addr", cfg.Metrics.Addr)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	ready.Store(false)
	logger.Info("shutdown complete")
	return nil
}

func stopObservability(s ObservabilityServer, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		logger.Warn("error stopping observability server", "error", err)
	}
}

// monitorServerErrors cancels ctx when the server reports an error. It exits
// when the channel closes or ctx is done.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string, logger *slog.Logger) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			logger.Error("server error, triggering shutdown", "server", serverName, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}
