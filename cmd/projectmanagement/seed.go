// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the built-in roles",
		Long: `Creates the Developer, Admin and ProjectManager roles.
This command is idempotent - it will not create duplicates if run multiple times.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadStoreConfig(cmd, opts)
			if err != nil {
				return err
			}

			// cmd.Context() carries SIGINT/SIGTERM cancellation
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			roles, closeFn, err := deps.OpenRoles(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := auth.SeedRoles(ctx, roles, logger); err != nil {
				return err
			}
			cmd.Println("Roles seeded")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}
