// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// DeveloperSummary is a developer profile joined with its principal's
// contact fields.
type DeveloperSummary struct {
	ID                ulid.ULID `json:"id" yaml:"id"`
	PrincipalID       ulid.ULID `json:"principal_id" yaml:"principal_id"`
	Email             string    `json:"email" yaml:"email"`
	FirstName         string    `json:"first_name" yaml:"first_name"`
	LastName          string    `json:"last_name" yaml:"last_name"`
	SkillLevel        string    `json:"skill_level" yaml:"skill_level"`
	Specialization    string    `json:"specialization" yaml:"specialization"`
	YearsOfExperience int       `json:"years_of_experience" yaml:"years_of_experience"`
	Department        string    `json:"department" yaml:"department"`
}

// ProjectManagerSummary is a project manager profile joined with its
// principal's contact fields.
type ProjectManagerSummary struct {
	ID                ulid.ULID `json:"id" yaml:"id"`
	PrincipalID       ulid.ULID `json:"principal_id" yaml:"principal_id"`
	Email             string    `json:"email" yaml:"email"`
	FirstName         string    `json:"first_name" yaml:"first_name"`
	LastName          string    `json:"last_name" yaml:"last_name"`
	SkillLevel        string    `json:"skill_level" yaml:"skill_level"`
	YearsOfExperience int       `json:"years_of_experience" yaml:"years_of_experience"`
	Department        string    `json:"department" yaml:"department"`
}

// DeveloperView is a developer with the managers it is actively assigned to.
type DeveloperView struct {
	DeveloperSummary `yaml:",inline"`
	ProjectManagers  []ProjectManagerSummary `json:"project_managers" yaml:"project_managers"`
}

// ProjectManagerView is a project manager with its actively assigned
// developers.
type ProjectManagerView struct {
	ProjectManagerSummary `yaml:",inline"`
	Developers            []DeveloperSummary `json:"developers" yaml:"developers"`
}

// Link is an active assignment reduced to its key.
type Link struct {
	ProjectManagerID ulid.ULID
	DeveloperID      ulid.ULID
}

// DirectoryRepository reads profiles and active links. It never writes.
type DirectoryRepository interface {
	// ListDevelopers returns every developer ordered by email.
	ListDevelopers(ctx context.Context) ([]DeveloperSummary, error)

	// ListProjectManagers returns every project manager ordered by email.
	ListProjectManagers(ctx context.Context) ([]ProjectManagerSummary, error)

	// GetDeveloper returns one developer. Returns ErrNotFound if absent.
	GetDeveloper(ctx context.Context, id ulid.ULID) (*DeveloperSummary, error)

	// GetProjectManager returns one project manager. Returns ErrNotFound if absent.
	GetProjectManager(ctx context.Context, id ulid.ULID) (*ProjectManagerSummary, error)

	// ActiveLinks returns every active assignment.
	ActiveLinks(ctx context.Context) ([]Link, error)

	// ManagersOf returns the project managers actively assigned to developerID.
	ManagersOf(ctx context.Context, developerID ulid.ULID) ([]ProjectManagerSummary, error)

	// DevelopersOf returns the developers actively assigned to projectManagerID.
	DevelopersOf(ctx context.Context, projectManagerID ulid.ULID) ([]DeveloperSummary, error)
}
