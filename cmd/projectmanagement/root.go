// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/amosmoyo/ProjectManagement/internal/config"
	"github.com/amosmoyo/ProjectManagement/internal/logging"
)

const serviceName = "projectmanagement"

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	configFile string
	output     string
}

// NewRootCmd creates the root command for the projectmanagement CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmdWithDeps(nil)
}

func newRootCmdWithDeps(deps *Deps) *cobra.Command {
	deps = deps.withDefaults()
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Developer and project manager accounts and assignments",
		Long: `projectmanagement registers developers and project managers, issues
bearer tokens, and manages which developers report to which project managers.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path")
	flags.String("database-url", "", "PostgreSQL connection URL (overrides config and DATABASE_URL)")
	flags.String("log-format", "", "log format (json or text)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("metrics-addr", "", "metrics/health HTTP address")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format (json or yaml)")

	cmd.AddCommand(NewMigrateCmd(opts, deps))
	cmd.AddCommand(NewSeedCmd(opts, deps))
	cmd.AddCommand(NewRegisterCmd(opts, deps))
	cmd.AddCommand(NewLoginCmd(opts, deps))
	cmd.AddCommand(NewAssignCmd(opts, deps))
	cmd.AddCommand(NewUnassignCmd(opts, deps))
	cmd.AddCommand(NewDevelopersCmd(opts, deps))
	cmd.AddCommand(NewManagersCmd(opts, deps))
	cmd.AddCommand(NewServeCmd(opts, deps))

	return cmd
}

// loadConfig reads configuration for cmd and installs the default logger.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	if err := validateOutput(opts.output); err != nil {
		return config.Config{}, nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.SetDefault(serviceName, version, cfg.Log.Format, level)
	return cfg, logger, nil
}

// loadStoreConfig is loadConfig for commands that need the database.
func loadStoreConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, *slog.Logger, error) {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return cfg, nil, err
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

// loadAppConfig is loadConfig for commands that run the services.
func loadAppConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, *slog.Logger, error) {
	cfg, logger, err := loadStoreConfig(cmd, opts)
	if err != nil {
		return cfg, nil, err
	}
	if err := cfg.ValidateToken(); err != nil {
		return cfg, nil, oops.With("hint", "set PM_TOKEN__SECRET").Wrap(err)
	}
	return cfg, logger, nil
}
