// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes raised by this package. Callers classify errors with
// errutil.Code rather than matching messages.
const (
	CodeValidationFailed   = "AUTH_VALIDATION_FAILED"
	CodeWeakPassword       = "AUTH_WEAK_PASSWORD"
	CodeInvalidUserType    = "AUTH_INVALID_USER_TYPE"
	CodeDuplicateEmail     = "AUTH_DUPLICATE_EMAIL"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeAccountLocked      = "AUTH_ACCOUNT_LOCKED"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeForbidden          = "AUTH_FORBIDDEN"
)

// ErrDuplicateEmail is returned by PrincipalRepository.Create when the email
// is already registered in any casing.
var ErrDuplicateEmail = errors.New("duplicate email")
