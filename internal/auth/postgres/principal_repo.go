// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package postgres implements the auth repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/store"
)

const principalColumns = `
	id, email, password_hash, first_name, last_name, email_confirmed,
	failed_attempts, locked_until, created_at, updated_at`

// PrincipalRepository implements auth.PrincipalRepository using PostgreSQL.
// Statements run inside the transaction carried by ctx when there is one.
type PrincipalRepository struct {
	db store.DB
}

// NewPrincipalRepository creates a new PrincipalRepository.
func NewPrincipalRepository(db store.DB) *PrincipalRepository {
	return &PrincipalRepository{db: db}
}

// Create stores a new principal.
func (r *PrincipalRepository) Create(ctx context.Context, p *auth.Principal) error {
	_, err := store.Conn(ctx, r.db).Exec(ctx, `
		INSERT INTO principals (`+principalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		p.ID.String(),
		p.Email,
		p.PasswordHash,
		p.FirstName,
		p.LastName,
		p.EmailConfirmed,
		p.FailedAttempts,
		p.LockedUntil,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return oops.Code("PRINCIPAL_DUPLICATE_EMAIL").
				With("email", p.Email).
				With("constraint", store.ConstraintName(err)).
				Wrap(auth.ErrDuplicateEmail)
		}
		return oops.Code("PRINCIPAL_CREATE_FAILED").
			With("operation", "insert principal").
			With("email", p.Email).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a principal by ID.
func (r *PrincipalRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Principal, error) {
	row := store.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT `+principalColumns+`
		FROM principals
		WHERE id = $1
	`, id.String())
	return r.scanOne(row, "id", id.String())
}

// GetByIDForUpdate retrieves a principal and locks its row.
func (r *PrincipalRepository) GetByIDForUpdate(ctx context.Context, id ulid.ULID) (*auth.Principal, error) {
	row := store.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT `+principalColumns+`
		FROM principals
		WHERE id = $1
		FOR UPDATE
	`, id.String())
	return r.scanOne(row, "id", id.String())
}

// GetByEmail retrieves a principal by email (case-insensitive).
func (r *PrincipalRepository) GetByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	row := store.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT `+principalColumns+`
		FROM principals
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return r.scanOne(row, "email", email)
}

// EmailExists reports whether email is registered in any casing.
func (r *PrincipalRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := store.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM principals WHERE LOWER(email) = LOWER($1))
	`, email).Scan(&exists)
	if err != nil {
		return false, oops.Code("PRINCIPAL_QUERY_FAILED").
			With("operation", "check email exists").
			With("email", email).
			Wrap(err)
	}
	return exists, nil
}

// UpdateLoginState persists the failure counter and lockout.
func (r *PrincipalRepository) UpdateLoginState(ctx context.Context, p *auth.Principal) error {
	result, err := store.Conn(ctx, r.db).Exec(ctx, `
		UPDATE principals SET
			failed_attempts = $2,
			locked_until = $3,
			updated_at = $4
		WHERE id = $1
	`, p.ID.String(), p.FailedAttempts, p.LockedUntil, p.UpdatedAt)
	if err != nil {
		return oops.Code("PRINCIPAL_UPDATE_FAILED").
			With("operation", "update login state").
			With("id", p.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PRINCIPAL_NOT_FOUND").
			With("id", p.ID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *PrincipalRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	result, err := store.Conn(ctx, r.db).Exec(ctx, `
		UPDATE principals SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`, id.String(), passwordHash, time.Now())
	if err != nil {
		return oops.Code("PRINCIPAL_UPDATE_PASSWORD_FAILED").
			With("operation", "update password").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PRINCIPAL_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

func (r *PrincipalRepository) scanOne(row pgx.Row, key, value string) (*auth.Principal, error) {
	p, err := scanPrincipal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PRINCIPAL_NOT_FOUND").
			With(key, value).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PRINCIPAL_GET_FAILED").
			With("operation", "get principal by "+key).
			With(key, value).
			Wrap(err)
	}
	return p, nil
}

// scanPrincipal scans a single row into a Principal.
// Callers are responsible for handling pgx.ErrNoRows.
func scanPrincipal(row pgx.Row) (*auth.Principal, error) {
	var (
		idStr string
		p     auth.Principal
	)
	err := row.Scan(
		&idStr,
		&p.Email,
		&p.PasswordHash,
		&p.FirstName,
		&p.LastName,
		&p.EmailConfirmed,
		&p.FailedAttempts,
		&p.LockedUntil,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}

	p.ID, err = ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("PRINCIPAL_INVALID_ID").
			With("operation", "parse principal id").
			With("id", idStr).
			Wrap(err)
	}
	return &p, nil
}

// Compile-time interface check.
var _ auth.PrincipalRepository = (*PrincipalRepository)(nil)
