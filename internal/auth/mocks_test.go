// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth_test

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

type mockPrincipals struct{ mock.Mock }

func (m *mockPrincipals) Create(ctx context.Context, p *auth.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrincipals) GetByID(ctx context.Context, id ulid.ULID) (*auth.Principal, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*auth.Principal)
	return p, args.Error(1)
}

func (m *mockPrincipals) GetByIDForUpdate(ctx context.Context, id ulid.ULID) (*auth.Principal, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*auth.Principal)
	return p, args.Error(1)
}

func (m *mockPrincipals) GetByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(*auth.Principal)
	return p, args.Error(1)
}

func (m *mockPrincipals) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockPrincipals) UpdateLoginState(ctx context.Context, p *auth.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrincipals) UpdatePassword(ctx context.Context, id ulid.ULID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

type mockRoles struct{ mock.Mock }

func (m *mockRoles) Seed(ctx context.Context, roles []auth.Role) (int, error) {
	args := m.Called(ctx, roles)
	return args.Int(0), args.Error(1)
}

func (m *mockRoles) Grant(ctx context.Context, principalID ulid.ULID, role auth.Role) error {
	return m.Called(ctx, principalID, role).Error(0)
}

func (m *mockRoles) ListForPrincipal(ctx context.Context, principalID ulid.ULID) ([]auth.Role, error) {
	args := m.Called(ctx, principalID)
	roles, _ := args.Get(0).([]auth.Role)
	return roles, args.Error(1)
}

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) CreateProfile(ctx context.Context, p auth.NewProfile) (ulid.ULID, error) {
	args := m.Called(ctx, p)
	id, _ := args.Get(0).(ulid.ULID)
	return id, args.Error(1)
}

func (m *mockProfiles) ProfileID(ctx context.Context, principalID ulid.ULID, userType auth.UserType) (ulid.ULID, error) {
	args := m.Called(ctx, principalID, userType)
	id, _ := args.Get(0).(ulid.ULID)
	return id, args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

func (m *mockHasher) NeedsUpgrade(hash string) bool {
	return m.Called(hash).Bool(0)
}

// fakeTransactor runs fn inline and records the outcome of each unit of work.
type fakeTransactor struct {
	commits   int
	rollbacks int
}

func (f *fakeTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}
