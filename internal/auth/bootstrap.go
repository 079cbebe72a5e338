// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

// SeedRoles makes sure every role in AllRoles exists. It is safe to run on
// every start.
func SeedRoles(ctx context.Context, roles RoleRepository, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	all := AllRoles()
	added, err := roles.Seed(ctx, all)
	if err != nil {
		err = oops.Code("ROLE_SEED_FAILED").With("roles", all).Wrap(err)
		errutil.LogError(ctx, logger, "role seeding failed", err)
		return err
	}

	logger.InfoContext(ctx, "roles seeded", "added", added, "total", len(all))
	return nil
}
