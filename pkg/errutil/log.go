// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package errutil bridges samber/oops errors with slog and tests.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// Code returns the oops code carried by err, or "" when err has none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := any(oopsErr.Code()).(string)
	return code
}

// LogError logs err at error level. Oops errors contribute their code and
// context map; other errors are logged by their message. attrs are appended
// as additional key/value pairs.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...any) {
	log(ctx, logger, slog.LevelError, msg, err, attrs)
}

// LogWarn is LogError at warn level, for failures the caller recovers from.
func LogWarn(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...any) {
	log(ctx, logger, slog.LevelWarn, msg, err, attrs)
}

func log(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, err error, attrs []any) {
	if logger == nil {
		logger = slog.Default()
	}
	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields, "error", errorString(err))
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := Code(oopsErr); code != "" {
			fields = append(fields, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			fields = append(fields, "context", c)
		}
	}
	fields = append(fields, attrs...)
	logger.Log(ctx, level, msg, fields...)
}

func errorString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
