// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Assignment links one project manager profile to one developer profile.
// There is at most one row per pair; Active records whether the link is
// currently in force.
type Assignment struct {
	ProjectManagerID ulid.ULID
	DeveloperID      ulid.ULID
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Outcome describes what Assign or Unassign did.
type Outcome string

// Assignment outcomes.
const (
	OutcomeAssigned      Outcome = "assigned"
	OutcomeReactivated   Outcome = "reactivated"
	OutcomeAlreadyActive Outcome = "already_active"
	OutcomeUnassigned    Outcome = "unassigned"
	OutcomeNoOp          Outcome = "no_op"
)

// Changed reports whether the outcome wrote to the store.
func (o Outcome) Changed() bool {
	return o == OutcomeAssigned || o == OutcomeReactivated || o == OutcomeUnassigned
}

// AssignmentRepository manages assignment rows. Methods run inside the
// transaction carried by ctx.
type AssignmentRepository interface {
	// GetForUpdate returns the row for the pair and locks it.
	// Returns ErrNotFound if the pair was never assigned.
	GetForUpdate(ctx context.Context, projectManagerID, developerID ulid.ULID) (*Assignment, error)

	// Insert stores a new row unless one already exists for the pair.
	// inserted is false when a concurrent transaction won the race.
	Insert(ctx context.Context, a *Assignment) (inserted bool, err error)

	// SetActive flips the active flag and stamps updatedAt.
	SetActive(ctx context.Context, projectManagerID, developerID ulid.ULID, active bool, updatedAt time.Time) error
}

// nextTimestamp returns now truncated to the store's microsecond precision,
// moved past prev when the clock has not advanced beyond it.
func nextTimestamp(prev, now time.Time) time.Time {
	now = now.Truncate(time.Microsecond)
	if !now.After(prev) {
		return prev.Truncate(time.Microsecond).Add(time.Microsecond)
	}
	return now
}
