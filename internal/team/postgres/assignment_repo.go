// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/internal/store"
	"github.com/amosmoyo/ProjectManagement/internal/team"
)

// AssignmentRepository implements team.AssignmentRepository using PostgreSQL.
type AssignmentRepository struct {
	db store.DB
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(db store.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// GetForUpdate returns the row for the pair and locks it until the
// surrounding transaction ends.
func (r *AssignmentRepository) GetForUpdate(ctx context.Context, projectManagerID, developerID ulid.ULID) (*team.Assignment, error) {
	a := &team.Assignment{ProjectManagerID: projectManagerID, DeveloperID: developerID}
	err := store.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT active, created_at, updated_at
		FROM project_manager_developers
		WHERE project_manager_id = $1 AND developer_id = $2
		FOR UPDATE
	`, projectManagerID.String(), developerID.String()).Scan(&a.Active, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ASSIGNMENT_NOT_FOUND").
			With("project_manager_id", projectManagerID.String()).
			With("developer_id", developerID.String()).
			Wrap(team.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ASSIGNMENT_QUERY_FAILED").
			With("operation", "select assignment for update").
			With("project_manager_id", projectManagerID.String()).
			With("developer_id", developerID.String()).
			Wrap(err)
	}
	return a, nil
}

// Insert stores a new row unless the pair already has one.
func (r *AssignmentRepository) Insert(ctx context.Context, a *team.Assignment) (bool, error) {
	tag, err := store.Conn(ctx, r.db).Exec(ctx, `
		INSERT INTO project_manager_developers (
			project_manager_id, developer_id, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_manager_id, developer_id) DO NOTHING
	`,
		a.ProjectManagerID.String(),
		a.DeveloperID.String(),
		a.Active,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return false, oops.Code("ASSIGNMENT_INSERT_FAILED").
			With("operation", "insert assignment").
			With("project_manager_id", a.ProjectManagerID.String()).
			With("developer_id", a.DeveloperID.String()).
			With("constraint", store.ConstraintName(err)).
			Wrap(err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetActive flips the active flag and stamps updatedAt.
func (r *AssignmentRepository) SetActive(ctx context.Context, projectManagerID, developerID ulid.ULID, active bool, updatedAt time.Time) error {
	tag, err := store.Conn(ctx, r.db).Exec(ctx, `
		UPDATE project_manager_developers
		SET active = $3, updated_at = $4
		WHERE project_manager_id = $1 AND developer_id = $2
	`, projectManagerID.String(), developerID.String(), active, updatedAt)
	if err != nil {
		return oops.Code("ASSIGNMENT_UPDATE_FAILED").
			With("operation", "set assignment active").
			With("project_manager_id", projectManagerID.String()).
			With("developer_id", developerID.String()).
			With("active", active).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ASSIGNMENT_NOT_FOUND").
			With("project_manager_id", projectManagerID.String()).
			With("developer_id", developerID.String()).
			Wrap(team.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ team.AssignmentRepository = (*AssignmentRepository)(nil)
