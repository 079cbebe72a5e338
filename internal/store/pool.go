// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Connection probe defaults.
const (
	DefaultConnectRetries = 5
	DefaultConnectBackoff = 250 * time.Millisecond
)

// OpenOptions tunes the startup connectivity probe.
type OpenOptions struct {
	// Retries is the number of additional ping attempts after the first.
	Retries uint64
	// Backoff is the base delay of the exponential backoff between pings.
	Backoff time.Duration
	// Logger receives a warning for every failed ping. Defaults to slog.Default().
	Logger *slog.Logger
}

// Open creates a pgx pool and waits until the database answers a ping.
// The probe only runs at process start; repository calls are never retried.
func Open(ctx context.Context, databaseURL string, opts OpenOptions) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, oops.Code("DB_URL_MISSING").Errorf("database url is required")
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultConnectBackoff
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	attempt := 0
	backoff := retry.WithMaxRetries(opts.Retries, retry.NewExponential(opts.Backoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if pingErr := pool.Ping(ctx); pingErr != nil {
			opts.Logger.Warn("database ping failed", "attempt", attempt, "error", pingErr)
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			With("attempts", attempt).
			Wrap(err)
	}
	return pool, nil
}
