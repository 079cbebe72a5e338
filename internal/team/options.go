// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team

import (
	"log/slog"
	"time"
)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures AssignmentService and QueryService.
type Option func(*options)

// WithClock sets the time source for assignment timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
