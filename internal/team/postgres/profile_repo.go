// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package postgres implements the team repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/internal/store"
	"github.com/amosmoyo/ProjectManagement/internal/team"
)

// ProfileRepository implements team.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	db store.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db store.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateDeveloper stores a new developer profile.
func (r *ProfileRepository) CreateDeveloper(ctx context.Context, p *team.DeveloperProfile) error {
	_, err := store.Conn(ctx, r.db).Exec(ctx, `
		INSERT INTO developer_profiles (
			id, principal_id, skill_level, specialization,
			years_of_experience, department, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		p.ID.String(),
		p.PrincipalID.String(),
		p.SkillLevel,
		p.Specialization,
		p.YearsOfExperience,
		p.Department,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return oops.Code("DEVELOPER_CREATE_FAILED").
			With("operation", "insert developer profile").
			With("principal_id", p.PrincipalID.String()).
			With("constraint", store.ConstraintName(err)).
			Wrap(err)
	}
	return nil
}

// CreateProjectManager stores a new project manager profile.
func (r *ProfileRepository) CreateProjectManager(ctx context.Context, p *team.ProjectManagerProfile) error {
	_, err := store.Conn(ctx, r.db).Exec(ctx, `
		INSERT INTO project_manager_profiles (
			id, principal_id, skill_level,
			years_of_experience, department, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		p.ID.String(),
		p.PrincipalID.String(),
		p.SkillLevel,
		p.YearsOfExperience,
		p.Department,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PROJECT_MANAGER_CREATE_FAILED").
			With("operation", "insert project manager profile").
			With("principal_id", p.PrincipalID.String()).
			With("constraint", store.ConstraintName(err)).
			Wrap(err)
	}
	return nil
}

// DeveloperExists reports whether a developer profile has the given id.
func (r *ProfileRepository) DeveloperExists(ctx context.Context, id ulid.ULID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM developer_profiles WHERE id = $1)`, "developer", id)
}

// ProjectManagerExists reports whether a project manager profile has the given id.
func (r *ProfileRepository) ProjectManagerExists(ctx context.Context, id ulid.ULID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM project_manager_profiles WHERE id = $1)`, "project manager", id)
}

// DeveloperIDForPrincipal returns the developer profile owned by principalID.
func (r *ProfileRepository) DeveloperIDForPrincipal(ctx context.Context, principalID ulid.ULID) (ulid.ULID, error) {
	return r.idFor(ctx, `SELECT id FROM developer_profiles WHERE principal_id = $1`, "developer", principalID)
}

// ProjectManagerIDForPrincipal returns the project manager profile owned by principalID.
func (r *ProfileRepository) ProjectManagerIDForPrincipal(ctx context.Context, principalID ulid.ULID) (ulid.ULID, error) {
	return r.idFor(ctx, `SELECT id FROM project_manager_profiles WHERE principal_id = $1`, "project manager", principalID)
}

func (r *ProfileRepository) exists(ctx context.Context, query, kind string, id ulid.ULID) (bool, error) {
	var ok bool
	if err := store.Conn(ctx, r.db).QueryRow(ctx, query, id.String()).Scan(&ok); err != nil {
		return false, oops.Code("PROFILE_QUERY_FAILED").
			With("operation", "check "+kind+" exists").
			With("id", id.String()).
			Wrap(err)
	}
	return ok, nil
}

func (r *ProfileRepository) idFor(ctx context.Context, query, kind string, principalID ulid.ULID) (ulid.ULID, error) {
	var idStr string
	err := store.Conn(ctx, r.db).QueryRow(ctx, query, principalID.String()).Scan(&idStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return ulid.ULID{}, oops.Code("PROFILE_NOT_FOUND").
			With("kind", kind).
			With("principal_id", principalID.String()).
			Wrap(team.ErrNotFound)
	}
	if err != nil {
		return ulid.ULID{}, oops.Code("PROFILE_QUERY_FAILED").
			With("operation", "get "+kind+" profile by principal").
			With("principal_id", principalID.String()).
			Wrap(err)
	}
	return parseID(idStr)
}

func parseID(s string) (ulid.ULID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, oops.Code("PROFILE_INVALID_ID").
			With("id", s).
			Wrap(err)
	}
	return id, nil
}

// Compile-time interface check.
var _ team.ProfileRepository = (*ProfileRepository)(nil)
