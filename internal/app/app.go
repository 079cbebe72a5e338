// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package app is the boundary in front of the auth and team services. Every
// operation returns a result carrying a status and a human readable message;
// internal error detail is logged, never returned.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/observability"
	"github.com/amosmoyo/ProjectManagement/internal/team"
)

// Authenticator registers principals, logs them in and checks tokens.
type Authenticator interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResult, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResult, error)
	Authorize(token string, roles ...auth.Role) (*auth.Claims, error)
}

// Assigner links and unlinks developers and project managers.
type Assigner interface {
	Assign(ctx context.Context, projectManagerID, developerID ulid.ULID) (team.Outcome, error)
	Unassign(ctx context.Context, projectManagerID, developerID ulid.ULID) (team.Outcome, error)
}

// Directory answers read-only team queries.
type Directory interface {
	ListDevelopers(ctx context.Context) ([]team.DeveloperView, error)
	ListProjectManagers(ctx context.Context) ([]team.ProjectManagerView, error)
	GetDeveloper(ctx context.Context, id ulid.ULID) (*team.DeveloperView, bool, error)
	GetProjectManager(ctx context.Context, id ulid.ULID) (*team.ProjectManagerView, bool, error)
	ManagersForDeveloper(ctx context.Context, id ulid.ULID) ([]team.ProjectManagerSummary, bool, error)
	DevelopersForManager(ctx context.Context, id ulid.ULID) ([]team.DeveloperSummary, bool, error)
}

// Operation names used in logs and metrics.
const (
	OpRegister                = "register"
	OpLogin                   = "login"
	OpAuthorize               = "authorize"
	OpAssignDeveloper         = "assign_developer"
	OpUnassignDeveloper       = "unassign_developer"
	OpGetAllDevelopers        = "get_all_developers"
	OpGetDeveloperByID        = "get_developer_by_id"
	OpGetManagersForDeveloper = "get_managers_for_developer"
	OpGetAllManagers          = "get_all_managers"
	OpGetManagerByID          = "get_manager_by_id"
	OpGetDevelopersForManager = "get_developers_for_manager"
)

// App is safe for concurrent use.
type App struct {
	auth     Authenticator
	assigner Assigner
	dir      Directory
	metrics  *observability.Metrics
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithMetrics records every operation in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithClock sets the time source used to measure operations.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger sets the logger for unexpected failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// New creates an App.
func New(authenticator Authenticator, assigner Assigner, dir Directory, opts ...Option) (*App, error) {
	if authenticator == nil {
		return nil, oops.Errorf("authenticator is required")
	}
	if assigner == nil {
		return nil, oops.Errorf("assigner is required")
	}
	if dir == nil {
		return nil, oops.Errorf("directory is required")
	}
	a := &App{
		auth:     authenticator,
		assigner: assigner,
		dir:      dir,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// observe records the operation once its status is known.
func (a *App) observe(op string, start time.Time, status Status) {
	a.metrics.ObserveOperation(op, string(status), a.now().Sub(start))
}
