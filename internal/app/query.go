// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package app

import (
	"context"
	"strconv"

	"github.com/oklog/ulid/v2"

	"github.com/amosmoyo/ProjectManagement/internal/team"
)

// GetAllDevelopers lists every developer with its active project managers.
func (a *App) GetAllDevelopers(ctx context.Context) QueryResult[[]team.DeveloperView] {
	start := a.now()
	var out QueryResult[[]team.DeveloperView]
	views, err := a.dir.ListDevelopers(ctx)
	if err != nil {
		out.Result = a.failed(ctx, OpGetAllDevelopers, err)
	} else {
		out = QueryResult[[]team.DeveloperView]{Result: succeeded(countMessage(len(views), "developer")), Data: views}
	}
	a.observe(OpGetAllDevelopers, start, out.Status)
	return out
}

// GetDeveloperByID returns one developer with its active project managers.
func (a *App) GetDeveloperByID(ctx context.Context, id string) QueryResult[*team.DeveloperView] {
	start := a.now()
	out := lookup(ctx, a, OpGetDeveloperByID, "developer id", id, "developer", a.dir.GetDeveloper)
	a.observe(OpGetDeveloperByID, start, out.Status)
	return out
}

// GetManagersForDeveloper returns the active project managers of a developer.
func (a *App) GetManagersForDeveloper(ctx context.Context, developerID string) QueryResult[[]team.ProjectManagerSummary] {
	start := a.now()
	out := lookup(ctx, a, OpGetManagersForDeveloper, "developer id", developerID, "developer", a.dir.ManagersForDeveloper)
	a.observe(OpGetManagersForDeveloper, start, out.Status)
	return out
}

// GetAllManagers lists every project manager with its active developers.
func (a *App) GetAllManagers(ctx context.Context) QueryResult[[]team.ProjectManagerView] {
	start := a.now()
	var out QueryResult[[]team.ProjectManagerView]
	views, err := a.dir.ListProjectManagers(ctx)
	if err != nil {
		out.Result = a.failed(ctx, OpGetAllManagers, err)
	} else {
		out = QueryResult[[]team.ProjectManagerView]{Result: succeeded(countMessage(len(views), "project manager")), Data: views}
	}
	a.observe(OpGetAllManagers, start, out.Status)
	return out
}

// GetManagerByID returns one project manager with its active developers.
func (a *App) GetManagerByID(ctx context.Context, id string) QueryResult[*team.ProjectManagerView] {
	start := a.now()
	out := lookup(ctx, a, OpGetManagerByID, "manager id", id, "project manager", a.dir.GetProjectManager)
	a.observe(OpGetManagerByID, start, out.Status)
	return out
}

// GetDevelopersForManager returns the active developers of a project manager.
func (a *App) GetDevelopersForManager(ctx context.Context, managerID string) QueryResult[[]team.DeveloperSummary] {
	start := a.now()
	out := lookup(ctx, a, OpGetDevelopersForManager, "manager id", managerID, "project manager", a.dir.DevelopersForManager)
	a.observe(OpGetDevelopersForManager, start, out.Status)
	return out
}

// lookup parses id, runs get and reports an absent entity as not_found.
func lookup[T any](
	ctx context.Context,
	a *App,
	op, field, id, kind string,
	get func(context.Context, ulid.ULID) (T, bool, error),
) QueryResult[T] {
	parsed, err := team.ParseID(field, id)
	if err != nil {
		return QueryResult[T]{Result: a.failed(ctx, op, err)}
	}
	data, found, err := get(ctx, parsed)
	if err != nil {
		return QueryResult[T]{Result: a.failed(ctx, op, err)}
	}
	if !found {
		return QueryResult[T]{Result: Result{Status: StatusNotFound, Message: kind + " not found"}}
	}
	return QueryResult[T]{Result: succeeded(kind + " found"), Data: data}
}

func countMessage(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
