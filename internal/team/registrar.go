// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

// ProfileRegistrar creates profiles on behalf of auth.Service.
type ProfileRegistrar struct {
	profiles ProfileRepository
}

// NewProfileRegistrar creates a ProfileRegistrar.
func NewProfileRegistrar(profiles ProfileRepository) *ProfileRegistrar {
	return &ProfileRegistrar{profiles: profiles}
}

// CreateProfile stores the profile matching p.UserType.
func (r *ProfileRegistrar) CreateProfile(ctx context.Context, p auth.NewProfile) (ulid.ULID, error) {
	switch p.UserType {
	case auth.UserTypeDeveloper:
		dev, err := NewDeveloperProfile(p.PrincipalID, p.SkillLevel, p.Specialization, p.YearsOfExperience, p.Department, p.CreatedAt)
		if err != nil {
			return ulid.ULID{}, err
		}
		if err := r.profiles.CreateDeveloper(ctx, dev); err != nil {
			return ulid.ULID{}, err
		}
		return dev.ID, nil
	case auth.UserTypeProjectManager:
		pm, err := NewProjectManagerProfile(p.PrincipalID, p.SkillLevel, p.YearsOfExperience, p.Department, p.CreatedAt)
		if err != nil {
			return ulid.ULID{}, err
		}
		if err := r.profiles.CreateProjectManager(ctx, pm); err != nil {
			return ulid.ULID{}, err
		}
		return pm.ID, nil
	default:
		return ulid.ULID{}, oops.Code(auth.CodeInvalidUserType).
			With("user_type", p.UserType).
			Errorf("no profile for user type %q", p.UserType)
	}
}

// ProfileID returns the profile of userType owned by principalID.
func (r *ProfileRegistrar) ProfileID(ctx context.Context, principalID ulid.ULID, userType auth.UserType) (ulid.ULID, error) {
	var (
		id  ulid.ULID
		err error
	)
	switch userType {
	case auth.UserTypeDeveloper:
		id, err = r.profiles.DeveloperIDForPrincipal(ctx, principalID)
	case auth.UserTypeProjectManager:
		id, err = r.profiles.ProjectManagerIDForPrincipal(ctx, principalID)
	default:
		err = ErrNotFound
	}
	if errors.Is(err, ErrNotFound) {
		return ulid.ULID{}, oops.Code("PROFILE_NOT_FOUND").
			With("principal_id", principalID.String()).
			With("user_type", userType).
			Wrap(auth.ErrNotFound)
	}
	return id, err
}

// Compile-time interface check.
var _ auth.ProfileStore = (*ProfileRegistrar)(nil)
