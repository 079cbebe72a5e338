// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amosmoyo/ProjectManagement/internal/app"
	"github.com/amosmoyo/ProjectManagement/internal/auth"
	authpg "github.com/amosmoyo/ProjectManagement/internal/auth/postgres"
	"github.com/amosmoyo/ProjectManagement/internal/config"
	"github.com/amosmoyo/ProjectManagement/internal/observability"
	"github.com/amosmoyo/ProjectManagement/internal/store"
	"github.com/amosmoyo/ProjectManagement/internal/team"
	teampg "github.com/amosmoyo/ProjectManagement/internal/team/postgres"
)

// Facade is the part of app.App the commands call.
type Facade interface {
	Register(ctx context.Context, req auth.RegisterRequest) app.AuthResult
	Login(ctx context.Context, req auth.LoginRequest) app.AuthResult
	Authorize(ctx context.Context, token string, roles ...auth.Role) app.AccessResult
	AssignDeveloper(ctx context.Context, managerID, developerID string) app.AssignmentResult
	UnassignDeveloper(ctx context.Context, managerID, developerID string) app.AssignmentResult
	GetAllDevelopers(ctx context.Context) app.QueryResult[[]team.DeveloperView]
	GetDeveloperByID(ctx context.Context, id string) app.QueryResult[*team.DeveloperView]
	GetManagersForDeveloper(ctx context.Context, developerID string) app.QueryResult[[]team.ProjectManagerSummary]
	GetAllManagers(ctx context.Context) app.QueryResult[[]team.ProjectManagerView]
	GetManagerByID(ctx context.Context, id string) app.QueryResult[*team.ProjectManagerView]
	GetDevelopersForManager(ctx context.Context, managerID string) app.QueryResult[[]team.DeveloperSummary]
}

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
	Pending() ([]uint, error)
	Applied() ([]uint, error)
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// Deps contains injectable dependencies for the commands.
// All fields with nil values will use their default implementations.
type Deps struct {
	// OpenApp wires the services against the configured database. The
	// returned func releases the connection pool.
	// Default: openApp
	OpenApp func(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *slog.Logger) (Facade, func(), error)

	// OpenRoles connects a role repository for seeding.
	// Default: openRoles
	OpenRoles func(ctx context.Context, cfg config.Config, logger *slog.Logger) (auth.RoleRepository, func(), error)

	// MigratorFactory creates a migrator for a database URL.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer
}

func (d *Deps) withDefaults() *Deps {
	out := &Deps{}
	if d != nil {
		*out = *d
	}
	if out.OpenApp == nil {
		out.OpenApp = openApp
	}
	if out.OpenRoles == nil {
		out.OpenRoles = openRoles
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = func(databaseURL string) (Migrator, error) {
			return store.NewMigrator(databaseURL)
		}
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, ready observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, ready,
				observability.WithLogger(slog.Default().With("component", "observability")))
		}
	}
	return out
}

func openPool(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()
	}
	return store.Open(ctx, cfg.Database.URL, store.OpenOptions{
		Retries: cfg.Database.ConnectRetries,
		Logger:  logger,
	})
}

func openRoles(ctx context.Context, cfg config.Config, logger *slog.Logger) (auth.RoleRepository, func(), error) {
	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return authpg.NewRoleRepository(pool), pool.Close, nil
}

// openApp connects to the database and wires repositories, services and the
// facade.
func openApp(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *slog.Logger) (Facade, func(), error) {
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret:   cfg.Token.Secret,
		Issuer:   cfg.Token.Issuer,
		Audience: cfg.Token.Audience,
		Expiry:   cfg.Token.Expiry,
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := wireApp(pool, tokens, cfg, metrics, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return a, pool.Close, nil
}

func wireApp(db store.DB, tokens *auth.TokenIssuer, cfg config.Config, metrics *observability.Metrics, logger *slog.Logger) (*app.App, error) {
	tx := store.NewTransactor(db)
	profiles := teampg.NewProfileRepository(db)

	authSvc, err := auth.NewService(
		authpg.NewPrincipalRepository(db),
		authpg.NewRoleRepository(db),
		team.NewProfileRegistrar(profiles),
		tx,
		tokens,
		auth.WithPasswordPolicy(auth.PasswordPolicy{
			MinLength:              cfg.Auth.Password.MinLength,
			RequireDigit:           cfg.Auth.Password.RequireDigit,
			RequireUppercase:       cfg.Auth.Password.RequireUppercase,
			RequireLowercase:       cfg.Auth.Password.RequireLowercase,
			RequireNonAlphanumeric: cfg.Auth.Password.RequireNonAlphanumeric,
		}),
		auth.WithLockoutPolicy(auth.LockoutPolicy{
			MaxFailedAttempts: cfg.Auth.Lockout.MaxFailedAttempts,
			Duration:          cfg.Auth.Lockout.Duration,
		}),
		auth.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	assignments, err := team.NewAssignmentService(profiles, teampg.NewAssignmentRepository(db), tx, team.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	queries, err := team.NewQueryService(teampg.NewDirectoryRepository(db), team.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return app.New(authSvc, assignments, queries, app.WithMetrics(metrics), app.WithLogger(logger))
}
