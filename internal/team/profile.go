// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Profile defaults applied when registration leaves a field empty.
const (
	DefaultSkillLevel     = "Junior"
	DefaultSpecialization = "Backend"
)

// DeveloperProfile holds the developer-specific attributes of a principal.
type DeveloperProfile struct {
	ID                ulid.ULID
	PrincipalID       ulid.ULID
	SkillLevel        string
	Specialization    string
	YearsOfExperience int
	Department        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProjectManagerProfile holds the manager-specific attributes of a principal.
type ProjectManagerProfile struct {
	ID                ulid.ULID
	PrincipalID       ulid.ULID
	SkillLevel        string
	YearsOfExperience int
	Department        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewDeveloperProfile creates a DeveloperProfile, applying defaults for an
// empty skill level or specialization and a nil years value.
func NewDeveloperProfile(principalID ulid.ULID, skillLevel, specialization string, years *int, department string, now time.Time) (*DeveloperProfile, error) {
	y, err := yearsOrDefault(years)
	if err != nil {
		return nil, err
	}
	return &DeveloperProfile{
		ID:                ulid.Make(),
		PrincipalID:       principalID,
		SkillLevel:        orDefault(skillLevel, DefaultSkillLevel),
		Specialization:    orDefault(specialization, DefaultSpecialization),
		YearsOfExperience: y,
		Department:        strings.TrimSpace(department),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// NewProjectManagerProfile creates a ProjectManagerProfile with the same
// defaults as NewDeveloperProfile.
func NewProjectManagerProfile(principalID ulid.ULID, skillLevel string, years *int, department string, now time.Time) (*ProjectManagerProfile, error) {
	y, err := yearsOrDefault(years)
	if err != nil {
		return nil, err
	}
	return &ProjectManagerProfile{
		ID:                ulid.Make(),
		PrincipalID:       principalID,
		SkillLevel:        orDefault(skillLevel, DefaultSkillLevel),
		YearsOfExperience: y,
		Department:        strings.TrimSpace(department),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func yearsOrDefault(years *int) (int, error) {
	if years == nil {
		return 0, nil
	}
	if *years < 0 {
		return 0, oops.Code(CodeInvalidProfile).
			With("years_of_experience", *years).
			Errorf("years of experience cannot be negative")
	}
	return *years, nil
}

// ProfileRepository manages profile persistence.
type ProfileRepository interface {
	// CreateDeveloper stores a new developer profile.
	CreateDeveloper(ctx context.Context, p *DeveloperProfile) error

	// CreateProjectManager stores a new project manager profile.
	CreateProjectManager(ctx context.Context, p *ProjectManagerProfile) error

	// DeveloperExists reports whether a developer profile has the given id.
	DeveloperExists(ctx context.Context, id ulid.ULID) (bool, error)

	// ProjectManagerExists reports whether a project manager profile has the given id.
	ProjectManagerExists(ctx context.Context, id ulid.ULID) (bool, error)

	// DeveloperIDForPrincipal returns the developer profile owned by the
	// principal. Returns ErrNotFound if there is none.
	DeveloperIDForPrincipal(ctx context.Context, principalID ulid.ULID) (ulid.ULID, error)

	// ProjectManagerIDForPrincipal returns the project manager profile owned
	// by the principal. Returns ErrNotFound if there is none.
	ProjectManagerIDForPrincipal(ctx context.Context, principalID ulid.ULID) (ulid.ULID, error)
}
