// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package auth

import (
	"time"
)

// Lockout defaults applied when no policy is configured.
const (
	DefaultMaxFailedAttempts = 5
	DefaultLockoutDuration   = 5 * time.Minute
)

// LockoutPolicy controls brute-force protection at login.
type LockoutPolicy struct {
	// MaxFailedAttempts is the number of consecutive failures that locks the account.
	MaxFailedAttempts int

	// Duration is how long the account stays locked.
	Duration time.Duration
}

// DefaultLockoutPolicy returns the 5 attempts / 5 minutes policy.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{
		MaxFailedAttempts: DefaultMaxFailedAttempts,
		Duration:          DefaultLockoutDuration,
	}
}

// LockoutTime returns the lockout timestamp for the given failure count, or
// nil if failures is below the threshold.
func (p LockoutPolicy) LockoutTime(failures int, now time.Time) *time.Time {
	if failures < p.MaxFailedAttempts {
		return nil
	}
	until := now.Add(p.Duration)
	return &until
}

// IsLockedOut returns true if the lockout time is after now.
func IsLockedOut(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && lockedUntil.After(now)
}
