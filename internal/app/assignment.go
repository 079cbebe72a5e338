// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package app

import (
	"context"

	"github.com/amosmoyo/ProjectManagement/internal/team"
)

// AssignDeveloper makes the developer report to the project manager.
// Assigning an already active pair succeeds without changes.
func (a *App) AssignDeveloper(ctx context.Context, managerID, developerID string) AssignmentResult {
	start := a.now()
	out := a.assign(ctx, managerID, developerID)
	a.observe(OpAssignDeveloper, start, out.Status)
	return out
}

func (a *App) assign(ctx context.Context, managerID, developerID string) AssignmentResult {
	pm, err := team.ParseID("manager id", managerID)
	if err != nil {
		return AssignmentResult{Result: a.failed(ctx, OpAssignDeveloper, err)}
	}
	dev, err := team.ParseID("developer id", developerID)
	if err != nil {
		return AssignmentResult{Result: a.failed(ctx, OpAssignDeveloper, err)}
	}

	outcome, err := a.assigner.Assign(ctx, pm, dev)
	if err != nil {
		return AssignmentResult{Result: a.failed(ctx, OpAssignDeveloper, err)}
	}
	msg := "developer assigned"
	switch outcome {
	case team.OutcomeReactivated:
		msg = "developer reassigned"
	case team.OutcomeAlreadyActive:
		msg = "developer is already assigned"
	}
	return AssignmentResult{Result: succeeded(msg), Outcome: outcome}
}

// UnassignDeveloper ends an active assignment. When there is nothing to end
// the result has status no_op and Success false.
func (a *App) UnassignDeveloper(ctx context.Context, managerID, developerID string) AssignmentResult {
	start := a.now()
	out := a.unassign(ctx, managerID, developerID)
	a.observe(OpUnassignDeveloper, start, out.Status)
	return out
}

func (a *App) unassign(ctx context.Context, managerID, developerID string) AssignmentResult {
	pm, err := team.ParseID("manager id", managerID)
	if err != nil {
		return AssignmentResult{Result: a.failed(ctx, OpUnassignDeveloper, err)}
	}
	dev, err := team.ParseID("developer id", developerID)
	if err != nil {
		return AssignmentResult{Result: a.failed(ctx, OpUnassignDeveloper, err)}
	}

	outcome, err := a.assigner.Unassign(ctx, pm, dev)
	if err != nil {
		return AssignmentResult{Result: a.failed(ctx, OpUnassignDeveloper, err), Outcome: outcome}
	}
	return AssignmentResult{Result: succeeded("developer unassigned"), Outcome: outcome}
}
