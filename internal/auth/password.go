// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/oops"
)

// PasswordPolicy is the named password policy applied at registration.
type PasswordPolicy struct {
	MinLength              int
	RequireDigit           bool
	RequireUppercase       bool
	RequireLowercase       bool
	RequireNonAlphanumeric bool
}

// DefaultPasswordPolicy requires 8 characters with a digit, an uppercase and
// a lowercase letter.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		RequireDigit:     true,
		RequireUppercase: true,
		RequireLowercase: true,
	}
}

// Check returns AUTH_WEAK_PASSWORD listing every rule the password breaks.
func (p PasswordPolicy) Check(password string) error {
	var hasDigit, hasUpper, hasLower, hasOther bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case !unicode.IsLetter(r):
			hasOther = true
		}
	}

	var problems []string
	if n := len([]rune(password)); n < p.MinLength {
		problems = append(problems, fmt.Sprintf("at least %d characters", p.MinLength))
	}
	if p.RequireDigit && !hasDigit {
		problems = append(problems, "a digit")
	}
	if p.RequireUppercase && !hasUpper {
		problems = append(problems, "an uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		problems = append(problems, "a lowercase letter")
	}
	if p.RequireNonAlphanumeric && !hasOther {
		problems = append(problems, "a non-alphanumeric character")
	}
	if len(problems) == 0 {
		return nil
	}
	return oops.Code(CodeWeakPassword).
		With("violations", problems).
		Errorf("password must contain %s", strings.Join(problems, ", "))
}
