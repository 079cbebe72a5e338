// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package app

import (
	"context"
	"time"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
	"github.com/amosmoyo/ProjectManagement/internal/team"
	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

// Status classifies the result of an operation.
type Status string

// Result statuses.
const (
	StatusOK              Status = "ok"
	StatusValidationError Status = "validation_error"
	StatusConflict        Status = "conflict"
	StatusNotFound        Status = "not_found"
	StatusUnauthorized    Status = "unauthorized"
	StatusForbidden       Status = "forbidden"
	StatusLockedOut       Status = "locked_out"
	StatusNoOp            Status = "no_op"
	StatusUnavailable     Status = "unavailable"
)

// Result is the part every operation result shares.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Result      `yaml:",inline"`
	Token       string     `json:"token,omitempty" yaml:"token,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	PrincipalID string     `json:"principal_id,omitempty" yaml:"principal_id,omitempty"`
	ProfileID   string     `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	Email       string     `json:"email,omitempty" yaml:"email,omitempty"`
	UserType    string     `json:"user_type,omitempty" yaml:"user_type,omitempty"`
	Roles       []string   `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// AccessResult is returned by Authorize.
type AccessResult struct {
	Result      `yaml:",inline"`
	PrincipalID string   `json:"principal_id,omitempty" yaml:"principal_id,omitempty"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
	Roles       []string `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// AssignmentResult is returned by AssignDeveloper and UnassignDeveloper.
type AssignmentResult struct {
	Result  `yaml:",inline"`
	Outcome team.Outcome `json:"outcome,omitempty" yaml:"outcome,omitempty"`
}

// QueryResult carries the data of a read operation.
type QueryResult[T any] struct {
	Result `yaml:",inline"`
	Data   T `json:"data,omitempty" yaml:"data,omitempty"`
}

type classification struct {
	status Status
	// message replaces the error text when set.
	message string
}

// classifications maps the error codes whose message is safe to report.
// Classified errors are created without wrapping, so err.Error() carries no
// store detail. Any other code is unavailable.
var classifications = map[string]classification{
	auth.CodeValidationFailed:       {status: StatusValidationError},
	auth.CodeWeakPassword:           {status: StatusValidationError},
	auth.CodeInvalidUserType:        {status: StatusValidationError},
	team.CodeInvalidID:              {status: StatusValidationError},
	team.CodeInvalidProfile:         {status: StatusValidationError},
	auth.CodeDuplicateEmail:         {status: StatusConflict},
	team.CodeProjectManagerNotFound: {status: StatusNotFound},
	team.CodeDeveloperNotFound:      {status: StatusNotFound},
	auth.CodeInvalidCredentials:     {status: StatusUnauthorized, message: "invalid email or password"},
	auth.CodeTokenInvalid:           {status: StatusUnauthorized, message: "invalid or expired token"},
	auth.CodeForbidden:              {status: StatusForbidden, message: "insufficient permissions"},
	auth.CodeAccountLocked:          {status: StatusLockedOut, message: "account is temporarily locked, try again later"},
	team.CodeAssignmentNotActive:    {status: StatusNoOp},
	team.CodeQueryUnavailable:       {status: StatusUnavailable, message: unavailableMessage},
	team.CodeAssignmentUnavailable:  {status: StatusUnavailable, message: unavailableMessage},
}

const unavailableMessage = "the service is temporarily unavailable"

func succeeded(message string) Result {
	return Result{Success: true, Status: StatusOK, Message: message}
}

// failed converts err to a Result. Codes without a classification are logged
// with their full context and reported as unavailable.
func (a *App) failed(ctx context.Context, op string, err error) Result {
	code := errutil.Code(err)
	c, ok := classifications[code]
	if !ok {
		errutil.LogError(ctx, a.logger, op+" failed", err, "operation", op)
		return Result{Status: StatusUnavailable, Message: unavailableMessage}
	}
	msg := c.message
	if msg == "" {
		msg = err.Error()
	}
	return Result{Status: c.status, Message: msg}
}
