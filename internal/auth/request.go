// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// RegisterRequest is the input to Service.Register.
// SkillLevel, YearsOfExperience and Specialization fall back to profile
// defaults when empty.
type RegisterRequest struct {
	Email             string `json:"email" yaml:"email" validate:"required,email,max=256"`
	Password          string `json:"password" yaml:"password" validate:"required,max=128"`
	FirstName         string `json:"first_name" yaml:"first_name" validate:"required,max=100"`
	LastName          string `json:"last_name,omitempty" yaml:"last_name,omitempty" validate:"max=100"`
	UserType          string `json:"user_type" yaml:"user_type" validate:"required"`
	Department        string `json:"department" yaml:"department" validate:"required,max=100"`
	SkillLevel        string `json:"skill_level,omitempty" yaml:"skill_level,omitempty" validate:"max=50"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty" yaml:"years_of_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Specialization    string `json:"specialization,omitempty" yaml:"specialization,omitempty" validate:"max=100"`
}

// LoginRequest is the input to Service.Login.
type LoginRequest struct {
	Email    string `json:"email" yaml:"email" validate:"required,email,max=256"`
	Password string `json:"password" yaml:"password" validate:"required,max=128"`
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token       string
	ExpiresAt   time.Time
	PrincipalID ulid.ULID
	ProfileID   ulid.ULID
	Email       string
	UserType    UserType
	Roles       []Role
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest runs struct tag validation and reports every failing field
// under AUTH_VALIDATION_FAILED.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return oops.Code(CodeValidationFailed).Wrap(err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, describeField(fe))
	}
	return oops.Code(CodeValidationFailed).
		With("fields", fields).
		Errorf("invalid request: %s", strings.Join(fields, "; "))
}

func describeField(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}
