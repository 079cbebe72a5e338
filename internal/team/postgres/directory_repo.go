// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

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

const developerSelect = `
	SELECT d.id, d.principal_id, p.email, p.first_name, p.last_name,
	       d.skill_level, d.specialization, d.years_of_experience, d.department
	FROM developer_profiles d
	JOIN principals p ON p.id = d.principal_id`

const projectManagerSelect = `
	SELECT m.id, m.principal_id, p.email, p.first_name, p.last_name,
	       m.skill_level, m.years_of_experience, m.department
	FROM project_manager_profiles m
	JOIN principals p ON p.id = m.principal_id`

// DirectoryRepository implements team.DirectoryRepository using PostgreSQL.
type DirectoryRepository struct {
	db store.DB
}

// NewDirectoryRepository creates a new DirectoryRepository.
func NewDirectoryRepository(db store.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// ListDevelopers returns every developer ordered by email.
func (r *DirectoryRepository) ListDevelopers(ctx context.Context) ([]team.DeveloperSummary, error) {
	return r.developers(ctx, "list developers", developerSelect+`
		ORDER BY LOWER(p.email)`)
}

// ListProjectManagers returns every project manager ordered by email.
func (r *DirectoryRepository) ListProjectManagers(ctx context.Context) ([]team.ProjectManagerSummary, error) {
	return r.projectManagers(ctx, "list project managers", projectManagerSelect+`
		ORDER BY LOWER(p.email)`)
}

// GetDeveloper returns one developer.
func (r *DirectoryRepository) GetDeveloper(ctx context.Context, id ulid.ULID) (*team.DeveloperSummary, error) {
	row := store.Conn(ctx, r.db).QueryRow(ctx, developerSelect+`
		WHERE d.id = $1`, id.String())
	d, err := scanDeveloper(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("DEVELOPER_NOT_FOUND").
			With("id", id.String()).
			Wrap(team.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("DIRECTORY_QUERY_FAILED").
			With("operation", "get developer").
			With("id", id.String()).
			Wrap(err)
	}
	return d, nil
}

// GetProjectManager returns one project manager.
func (r *DirectoryRepository) GetProjectManager(ctx context.Context, id ulid.ULID) (*team.ProjectManagerSummary, error) {
	row := store.Conn(ctx, r.db).QueryRow(ctx, projectManagerSelect+`
		WHERE m.id = $1`, id.String())
	pm, err := scanProjectManager(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROJECT_MANAGER_NOT_FOUND").
			With("id", id.String()).
			Wrap(team.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("DIRECTORY_QUERY_FAILED").
			With("operation", "get project manager").
			With("id", id.String()).
			Wrap(err)
	}
	return pm, nil
}

// ActiveLinks returns every active assignment.
func (r *DirectoryRepository) ActiveLinks(ctx context.Context) ([]team.Link, error) {
	rows, err := store.Conn(ctx, r.db).Query(ctx, `
		SELECT project_manager_id, developer_id
		FROM project_manager_developers
		WHERE active
		ORDER BY created_at
	`)
	if err != nil {
		return nil, queryFailed("list active links", err)
	}
	defer rows.Close()

	var links []team.Link
	for rows.Next() {
		var pmStr, devStr string
		if err := rows.Scan(&pmStr, &devStr); err != nil {
			return nil, queryFailed("scan active link", err)
		}
		pmID, err := parseID(pmStr)
		if err != nil {
			return nil, err
		}
		devID, err := parseID(devStr)
		if err != nil {
			return nil, err
		}
		links = append(links, team.Link{ProjectManagerID: pmID, DeveloperID: devID})
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate active links", err)
	}
	return links, nil
}

// ManagersOf returns the project managers actively assigned to developerID.
func (r *DirectoryRepository) ManagersOf(ctx context.Context, developerID ulid.ULID) ([]team.ProjectManagerSummary, error) {
	return r.projectManagers(ctx, "managers of developer", projectManagerSelect+`
		JOIN project_manager_developers a ON a.project_manager_id = m.id
		WHERE a.developer_id = $1 AND a.active
		ORDER BY a.created_at`, developerID.String())
}

// DevelopersOf returns the developers actively assigned to projectManagerID.
func (r *DirectoryRepository) DevelopersOf(ctx context.Context, projectManagerID ulid.ULID) ([]team.DeveloperSummary, error) {
	return r.developers(ctx, "developers of manager", developerSelect+`
		JOIN project_manager_developers a ON a.developer_id = d.id
		WHERE a.project_manager_id = $1 AND a.active
		ORDER BY a.created_at`, projectManagerID.String())
}

func (r *DirectoryRepository) developers(ctx context.Context, op, query string, args ...any) ([]team.DeveloperSummary, error) {
	rows, err := store.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	out := []team.DeveloperSummary{}
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, queryFailed(op, err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}
	return out, nil
}

func (r *DirectoryRepository) projectManagers(ctx context.Context, op, query string, args ...any) ([]team.ProjectManagerSummary, error) {
	rows, err := store.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	out := []team.ProjectManagerSummary{}
	for rows.Next() {
		pm, err := scanProjectManager(rows)
		if err != nil {
			return nil, queryFailed(op, err)
		}
		out = append(out, *pm)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}
	return out, nil
}

// scanDeveloper scans one developer row.
// Callers are responsible for handling pgx.ErrNoRows.
func scanDeveloper(row pgx.Row) (*team.DeveloperSummary, error) {
	var (
		idStr, principalStr string
		d                   team.DeveloperSummary
	)
	if err := row.Scan(&idStr, &principalStr, &d.Email, &d.FirstName, &d.LastName,
		&d.SkillLevel, &d.Specialization, &d.YearsOfExperience, &d.Department); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}
	var err error
	if d.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if d.PrincipalID, err = parseID(principalStr); err != nil {
		return nil, err
	}
	return &d, nil
}

// scanProjectManager scans one project manager row.
// Callers are responsible for handling pgx.ErrNoRows.
func scanProjectManager(row pgx.Row) (*team.ProjectManagerSummary, error) {
	var (
		idStr, principalStr string
		pm                  team.ProjectManagerSummary
	)
	if err := row.Scan(&idStr, &principalStr, &pm.Email, &pm.FirstName, &pm.LastName,
		&pm.SkillLevel, &pm.YearsOfExperience, &pm.Department); err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}
	var err error
	if pm.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if pm.PrincipalID, err = parseID(principalStr); err != nil {
		return nil, err
	}
	return &pm, nil
}

func queryFailed(op string, err error) error {
	return oops.Code("DIRECTORY_QUERY_FAILED").
		With("operation", op).
		Wrap(err)
}

// Compile-time interface check.
var _ team.DirectoryRepository = (*DirectoryRepository)(nil)
