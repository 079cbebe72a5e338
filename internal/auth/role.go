// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"context"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Role is an access-control label granted to a principal.
type Role string

// The closed set of roles.
const (
	RoleDeveloper      Role = "Developer"
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "ProjectManager"
)

// AllRoles returns every role in a stable order.
func AllRoles() []Role {
	return []Role{RoleDeveloper, RoleAdmin, RoleProjectManager}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains(AllRoles(), r)
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// UserType is the kind of account requested at registration.
type UserType string

// Accepted user types.
const (
	UserTypeDeveloper      UserType = "Developer"
	UserTypeProjectManager UserType = "ProjectManager"
)

// ParseUserType parses s case-insensitively. Anything other than Developer
// or ProjectManager is rejected with AUTH_INVALID_USER_TYPE.
func ParseUserType(s string) (UserType, error) {
	switch {
	case strings.EqualFold(s, string(UserTypeDeveloper)):
		return UserTypeDeveloper, nil
	case strings.EqualFold(s, string(UserTypeProjectManager)):
		return UserTypeProjectManager, nil
	default:
		return "", oops.Code(CodeInvalidUserType).
			With("user_type", s).
			Errorf("user type must be %q or %q", UserTypeDeveloper, UserTypeProjectManager)
	}
}

// Role returns the single role granted for the user type.
func (u UserType) Role() Role {
	if u == UserTypeProjectManager {
		return RoleProjectManager
	}
	return RoleDeveloper
}

// String returns the user type name.
func (u UserType) String() string {
	return string(u)
}

// UserTypeForRoles derives the user type from role membership.
// ProjectManager takes precedence over Developer. ok is false when neither
// role is held.
func UserTypeForRoles(roles []Role) (userType UserType, ok bool) {
	switch {
	case slices.Contains(roles, RoleProjectManager):
		return UserTypeProjectManager, true
	case slices.Contains(roles, RoleDeveloper):
		return UserTypeDeveloper, true
	default:
		return "", false
	}
}

// HasAnyRole reports whether held contains at least one of want.
// An empty want matches any holder.
func HasAnyRole(held []Role, want ...Role) bool {
	if len(want) == 0 {
		return true
	}
	for _, r := range want {
		if slices.Contains(held, r) {
			return true
		}
	}
	return false
}

// RoleRepository manages the role registry and role grants.
type RoleRepository interface {
	// Seed inserts any missing roles and returns how many were added.
	Seed(ctx context.Context, roles []Role) (int, error)

	// Grant gives principalID the role. Granting a held role is a no-op.
	Grant(ctx context.Context, principalID ulid.ULID, role Role) error

	// ListForPrincipal returns the roles held by principalID in name order.
	ListForPrincipal(ctx context.Context, principalID ulid.ULID) ([]Role, error)
}
