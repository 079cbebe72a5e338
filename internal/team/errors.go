// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes raised by this package.
const (
	CodeInvalidID              = "INVALID_ID"
	CodeInvalidProfile         = "PROFILE_INVALID"
	CodeProjectManagerNotFound = "PROJECT_MANAGER_NOT_FOUND"
	CodeDeveloperNotFound      = "DEVELOPER_NOT_FOUND"
	CodeAssignmentNotActive    = "ASSIGNMENT_NOT_ACTIVE"
	CodeQueryUnavailable       = "QUERY_UNAVAILABLE"
	CodeAssignmentUnavailable  = "ASSIGNMENT_UNAVAILABLE"
)

// ParseID parses a profile id supplied by a caller. field names the input in
// the error.
func ParseID(field, s string) (ulid.ULID, error) {
	id, err := ulid.ParseStrict(strings.TrimSpace(s))
	if err != nil {
		return ulid.ULID{}, oops.Code(CodeInvalidID).
			With("field", field).
			With("value", s).
			Errorf("%s is not a valid id", field)
	}
	return id, nil
}
