// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AssignmentService assigns developers to project managers.
// Each call is one transaction; concurrent calls for the same pair are
// serialized by the row lock and the composite primary key.
type AssignmentService struct {
	profiles    ProfileRepository
	assignments AssignmentRepository
	tx          Transactor
	now         func() time.Time
	logger      *slog.Logger
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(profiles ProfileRepository, assignments AssignmentRepository, tx Transactor, opts ...Option) (*AssignmentService, error) {
	if profiles == nil {
		return nil, oops.Errorf("profile repository is required")
	}
	if assignments == nil {
		return nil, oops.Errorf("assignment repository is required")
	}
	if tx == nil {
		return nil, oops.Errorf("transactor is required")
	}
	o := buildOptions(opts)
	return &AssignmentService{
		profiles:    profiles,
		assignments: assignments,
		tx:          tx,
		now:         o.now,
		logger:      o.logger,
	}, nil
}

// Assign makes the pair active. A missing row is inserted, an inactive row
// is reactivated and an active row is left alone.
func (s *AssignmentService) Assign(ctx context.Context, projectManagerID, developerID ulid.ULID) (Outcome, error) {
	var outcome Outcome
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireProfiles(ctx, projectManagerID, developerID); err != nil {
			return err
		}

		row, err := s.assignments.GetForUpdate(ctx, projectManagerID, developerID)
		if errors.Is(err, ErrNotFound) {
			now := s.now().Truncate(time.Microsecond)
			inserted, err := s.assignments.Insert(ctx, &Assignment{
				ProjectManagerID: projectManagerID,
				DeveloperID:      developerID,
				Active:           true,
				CreatedAt:        now,
				UpdatedAt:        now,
			})
			if err != nil {
				return err
			}
			if inserted {
				outcome = OutcomeAssigned
				return nil
			}
			// Another transaction committed the row first.
			row, err = s.assignments.GetForUpdate(ctx, projectManagerID, developerID)
			if err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if row.Active {
			outcome = OutcomeAlreadyActive
			return nil
		}
		if err := s.assignments.SetActive(ctx, projectManagerID, developerID, true, nextTimestamp(row.UpdatedAt, s.now())); err != nil {
			return err
		}
		outcome = OutcomeReactivated
		return nil
	})
	if err != nil {
		return "", s.fail(ctx, "assign", projectManagerID, developerID, err)
	}

	s.logger.InfoContext(ctx, "developer assigned",
		"project_manager_id", projectManagerID.String(),
		"developer_id", developerID.String(),
		"outcome", string(outcome))
	return outcome, nil
}

// Unassign deactivates an active pair. A missing or inactive pair yields
// OutcomeNoOp with an ASSIGNMENT_NOT_ACTIVE error.
func (s *AssignmentService) Unassign(ctx context.Context, projectManagerID, developerID ulid.ULID) (Outcome, error) {
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireProfiles(ctx, projectManagerID, developerID); err != nil {
			return err
		}

		row, err := s.assignments.GetForUpdate(ctx, projectManagerID, developerID)
		if errors.Is(err, ErrNotFound) {
			return notActive(projectManagerID, developerID)
		}
		if err != nil {
			return err
		}
		if !row.Active {
			return notActive(projectManagerID, developerID)
		}
		return s.assignments.SetActive(ctx, projectManagerID, developerID, false, nextTimestamp(row.UpdatedAt, s.now()))
	})
	if err != nil {
		if errutil.Code(err) == CodeAssignmentNotActive {
			return OutcomeNoOp, err
		}
		return "", s.fail(ctx, "unassign", projectManagerID, developerID, err)
	}

	s.logger.InfoContext(ctx, "developer unassigned",
		"project_manager_id", projectManagerID.String(),
		"developer_id", developerID.String())
	return OutcomeUnassigned, nil
}

func (s *AssignmentService) requireProfiles(ctx context.Context, projectManagerID, developerID ulid.ULID) error {
	ok, err := s.profiles.ProjectManagerExists(ctx, projectManagerID)
	if err != nil {
		return err
	}
	if !ok {
		return oops.Code(CodeProjectManagerNotFound).
			With("project_manager_id", projectManagerID.String()).
			Errorf("project manager not found")
	}

	ok, err = s.profiles.DeveloperExists(ctx, developerID)
	if err != nil {
		return err
	}
	if !ok {
		return oops.Code(CodeDeveloperNotFound).
			With("developer_id", developerID.String()).
			Errorf("developer not found")
	}
	return nil
}

// fail passes classification errors through and turns store failures into
// ASSIGNMENT_UNAVAILABLE after logging them.
func (s *AssignmentService) fail(ctx context.Context, op string, projectManagerID, developerID ulid.ULID, err error) error {
	switch errutil.Code(err) {
	case CodeProjectManagerNotFound, CodeDeveloperNotFound:
		return err
	}
	errutil.LogError(ctx, s.logger, op+" failed", err,
		"project_manager_id", projectManagerID.String(),
		"developer_id", developerID.String())
	return oops.Code(CodeAssignmentUnavailable).
		With("operation", op).
		With("project_manager_id", projectManagerID.String()).
		With("developer_id", developerID.String()).
		Errorf("%s could not be completed", op)
}

func notActive(projectManagerID, developerID ulid.ULID) error {
	return oops.Code(CodeAssignmentNotActive).
		With("project_manager_id", projectManagerID.String()).
		With("developer_id", developerID.String()).
		Errorf("developer is not actively assigned to this project manager")
}
