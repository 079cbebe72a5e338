// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Principal is a registered identity, independent of its professional role.
type Principal struct {
	ID             ulid.ULID
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	EmailConfirmed bool
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPrincipal creates a confirmed Principal with a fresh ID.
// The email is stored as given; uniqueness is case-insensitive.
func NewPrincipal(email, passwordHash, firstName, lastName string, now time.Time) (*Principal, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, oops.Code(CodeValidationFailed).Errorf("email cannot be empty")
	}
	if passwordHash == "" {
		return nil, oops.Code(CodeValidationFailed).Errorf("password hash cannot be empty")
	}
	return &Principal{
		ID:             ulid.Make(),
		Email:          email,
		PasswordHash:   passwordHash,
		FirstName:      firstName,
		LastName:       lastName,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsLocked returns true if the principal is locked out at now.
func (p *Principal) IsLocked(now time.Time) bool {
	return IsLockedOut(p.LockedUntil, now)
}

// RecordFailure increments the failure counter and sets the lockout once the
// policy threshold is reached. An expired lockout restarts the count.
func (p *Principal) RecordFailure(policy LockoutPolicy, now time.Time) {
	if p.LockedUntil != nil && !p.IsLocked(now) {
		p.FailedAttempts = 0
		p.LockedUntil = nil
	}
	p.FailedAttempts++
	p.LockedUntil = policy.LockoutTime(p.FailedAttempts, now)
	p.UpdatedAt = now
}

// RecordSuccess resets failure counter and lockout.
func (p *Principal) RecordSuccess(now time.Time) {
	p.FailedAttempts = 0
	p.LockedUntil = nil
	p.UpdatedAt = now
}

// PrincipalRepository manages principal persistence.
type PrincipalRepository interface {
	// Create stores a new principal. A duplicate email (any casing) fails
	// with a unique violation from the store.
	Create(ctx context.Context, principal *Principal) error

	// GetByID retrieves a principal by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Principal, error)

	// GetByIDForUpdate retrieves a principal and locks its row until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id ulid.ULID) (*Principal, error)

	// GetByEmail retrieves a principal by email (case-insensitive).
	// Returns ErrNotFound if no principal has the given email.
	GetByEmail(ctx context.Context, email string) (*Principal, error)

	// EmailExists reports whether any principal uses email (case-insensitive).
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateLoginState persists the failure counter and lockout.
	UpdateLoginState(ctx context.Context, principal *Principal) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error
}
