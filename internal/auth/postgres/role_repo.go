// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/store"
)

// RoleRepository implements auth.RoleRepository using PostgreSQL.
type RoleRepository struct {
	db store.DB
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(db store.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Seed inserts the missing roles and returns how many were added.
func (r *RoleRepository) Seed(ctx context.Context, roles []auth.Role) (int, error) {
	conn := store.Conn(ctx, r.db)
	added := 0
	for _, role := range roles {
		tag, err := conn.Exec(ctx, `
			INSERT INTO roles (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, role.String())
		if err != nil {
			return added, oops.Code("ROLE_SEED_FAILED").
				With("operation", "insert role").
				With("role", role.String()).
				Wrap(err)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}

// Grant gives principalID the role.
func (r *RoleRepository) Grant(ctx context.Context, principalID ulid.ULID, role auth.Role) error {
	_, err := store.Conn(ctx, r.db).Exec(ctx, `
		INSERT INTO principal_roles (principal_id, role) VALUES ($1, $2)
		ON CONFLICT (principal_id, role) DO NOTHING
	`, principalID.String(), role.String())
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return oops.Code("ROLE_GRANT_UNKNOWN").
				With("principal_id", principalID.String()).
				With("role", role.String()).
				With("constraint", store.ConstraintName(err)).
				Wrap(err)
		}
		return oops.Code("ROLE_GRANT_FAILED").
			With("operation", "grant role").
			With("principal_id", principalID.String()).
			With("role", role.String()).
			Wrap(err)
	}
	return nil
}

// ListForPrincipal returns the roles held by principalID in name order.
func (r *RoleRepository) ListForPrincipal(ctx context.Context, principalID ulid.ULID) ([]auth.Role, error) {
	rows, err := store.Conn(ctx, r.db).Query(ctx, `
		SELECT role FROM principal_roles
		WHERE principal_id = $1
		ORDER BY role
	`, principalID.String())
	if err != nil {
		return nil, oops.Code("ROLE_LIST_FAILED").
			With("operation", "list roles").
			With("principal_id", principalID.String()).
			Wrap(err)
	}
	defer rows.Close()

	roles := make([]auth.Role, 0, 1)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, oops.Code("ROLE_LIST_FAILED").
				With("operation", "scan role").
				Wrap(err)
		}
		roles = append(roles, auth.Role(name))
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ROLE_LIST_FAILED").
			With("operation", "iterate roles").
			Wrap(err)
	}
	return roles, nil
}

// Compile-time interface check.
var _ auth.RoleRepository = (*RoleRepository)(nil)
