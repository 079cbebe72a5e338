// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package app_test

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/team"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*auth.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*auth.AuthResult)
	return res, args.Error(1)
}

func (m *mockAuth) Authorize(token string, roles ...auth.Role) (*auth.Claims, error) {
	args := m.Called(token, roles)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}

type mockAssigner struct{ mock.Mock }

func (m *mockAssigner) Assign(ctx context.Context, pm, dev ulid.ULID) (team.Outcome, error) {
	args := m.Called(ctx, pm, dev)
	return args.Get(0).(team.Outcome), args.Error(1)
}

func (m *mockAssigner) Unassign(ctx context.Context, pm, dev ulid.ULID) (team.Outcome, error) {
	args := m.Called(ctx, pm, dev)
	return args.Get(0).(team.Outcome), args.Error(1)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) ListDevelopers(ctx context.Context) ([]team.DeveloperView, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]team.DeveloperView)
	return out, args.Error(1)
}

func (m *mockDirectory) ListProjectManagers(ctx context.Context) ([]team.ProjectManagerView, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]team.ProjectManagerView)
	return out, args.Error(1)
}

func (m *mockDirectory) GetDeveloper(ctx context.Context, id ulid.ULID) (*team.DeveloperView, bool, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*team.DeveloperView)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockDirectory) GetProjectManager(ctx context.Context, id ulid.ULID) (*team.ProjectManagerView, bool, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*team.ProjectManagerView)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockDirectory) ManagersForDeveloper(ctx context.Context, id ulid.ULID) ([]team.ProjectManagerSummary, bool, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]team.ProjectManagerSummary)
	return out, args.Bool(1), args.Error(2)
}

func (m *mockDirectory) DevelopersForManager(ctx context.Context, id ulid.ULID) ([]team.DeveloperSummary, bool, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]team.DeveloperSummary)
	return out, args.Bool(1), args.Error(2)
}
