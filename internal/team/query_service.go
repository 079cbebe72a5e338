// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

// QueryService builds read-only developer and project manager views.
// Only active assignments appear in a view. Lookups report absence through a
// found flag; store failures surface as QUERY_UNAVAILABLE.
type QueryService struct {
	directory DirectoryRepository
	logger    *slog.Logger
}

// NewQueryService creates a QueryService.
func NewQueryService(directory DirectoryRepository, opts ...Option) (*QueryService, error) {
	if directory == nil {
		return nil, oops.Errorf("directory repository is required")
	}
	o := buildOptions(opts)
	return &QueryService{directory: directory, logger: o.logger}, nil
}

// ListDevelopers returns every developer with its active managers.
func (s *QueryService) ListDevelopers(ctx context.Context) ([]DeveloperView, error) {
	devs, err := s.directory.ListDevelopers(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list developers", err)
	}
	pms, err := s.directory.ListProjectManagers(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list developers", err)
	}
	links, err := s.directory.ActiveLinks(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list developers", err)
	}

	byID := make(map[ulid.ULID]ProjectManagerSummary, len(pms))
	for _, pm := range pms {
		byID[pm.ID] = pm
	}
	managers := make(map[ulid.ULID][]ProjectManagerSummary)
	for _, l := range links {
		if pm, ok := byID[l.ProjectManagerID]; ok {
			managers[l.DeveloperID] = append(managers[l.DeveloperID], pm)
		}
	}

	views := make([]DeveloperView, 0, len(devs))
	for _, d := range devs {
		views = append(views, DeveloperView{DeveloperSummary: d, ProjectManagers: nonNil(managers[d.ID])})
	}
	return views, nil
}

// ListProjectManagers returns every project manager with its active developers.
func (s *QueryService) ListProjectManagers(ctx context.Context) ([]ProjectManagerView, error) {
	pms, err := s.directory.ListProjectManagers(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list project managers", err)
	}
	devs, err := s.directory.ListDevelopers(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list project managers", err)
	}
	links, err := s.directory.ActiveLinks(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list project managers", err)
	}

	byID := make(map[ulid.ULID]DeveloperSummary, len(devs))
	for _, d := range devs {
		byID[d.ID] = d
	}
	developers := make(map[ulid.ULID][]DeveloperSummary)
	for _, l := range links {
		if d, ok := byID[l.DeveloperID]; ok {
			developers[l.ProjectManagerID] = append(developers[l.ProjectManagerID], d)
		}
	}

	views := make([]ProjectManagerView, 0, len(pms))
	for _, pm := range pms {
		views = append(views, ProjectManagerView{ProjectManagerSummary: pm, Developers: nonNil(developers[pm.ID])})
	}
	return views, nil
}

// GetDeveloper returns the developer with its active managers. found is
// false when id does not resolve.
func (s *QueryService) GetDeveloper(ctx context.Context, id ulid.ULID) (view *DeveloperView, found bool, err error) {
	dev, err := s.directory.GetDeveloper(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.unavailable(ctx, "get developer", err)
	}
	pms, err := s.directory.ManagersOf(ctx, id)
	if err != nil {
		return nil, false, s.unavailable(ctx, "get developer", err)
	}
	return &DeveloperView{DeveloperSummary: *dev, ProjectManagers: nonNil(pms)}, true, nil
}

// GetProjectManager returns the project manager with its active developers.
// found is false when id does not resolve.
func (s *QueryService) GetProjectManager(ctx context.Context, id ulid.ULID) (view *ProjectManagerView, found bool, err error) {
	pm, err := s.directory.GetProjectManager(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.unavailable(ctx, "get project manager", err)
	}
	devs, err := s.directory.DevelopersOf(ctx, id)
	if err != nil {
		return nil, false, s.unavailable(ctx, "get project manager", err)
	}
	return &ProjectManagerView{ProjectManagerSummary: *pm, Developers: nonNil(devs)}, true, nil
}

// ManagersForDeveloper returns the developer's active managers, empty when
// there are none. found is false when the developer does not exist.
func (s *QueryService) ManagersForDeveloper(ctx context.Context, id ulid.ULID) (managers []ProjectManagerSummary, found bool, err error) {
	if _, err := s.directory.GetDeveloper(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, s.unavailable(ctx, "managers for developer", err)
	}
	pms, err := s.directory.ManagersOf(ctx, id)
	if err != nil {
		return nil, false, s.unavailable(ctx, "managers for developer", err)
	}
	return nonNil(pms), true, nil
}

// DevelopersForManager returns the manager's active developers, empty when
// there are none. found is false when the manager does not exist.
func (s *QueryService) DevelopersForManager(ctx context.Context, id ulid.ULID) (developers []DeveloperSummary, found bool, err error) {
	if _, err := s.directory.GetProjectManager(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, s.unavailable(ctx, "developers for manager", err)
	}
	devs, err := s.directory.DevelopersOf(ctx, id)
	if err != nil {
		return nil, false, s.unavailable(ctx, "developers for manager", err)
	}
	return nonNil(devs), true, nil
}

// unavailable logs the store failure and returns a detail-free error.
func (s *QueryService) unavailable(ctx context.Context, op string, err error) error {
	errutil.LogError(ctx, s.logger, op+" failed", err, "operation", op)
	return oops.Code(CodeQueryUnavailable).
		With("operation", op).
		Errorf("%s is unavailable", op)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
