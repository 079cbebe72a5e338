// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"encoding/json"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/amosmoyo/ProjectManagement/internal/app"
)

// Output formats accepted by --output.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	if format != outputJSON && format != outputYAML {
		return oops.Code("CONFIG_INVALID").
			With("output", format).
			Errorf("output must be 'json' or 'yaml', got %q", format)
	}
	return nil
}

// writeOutput encodes v to the command's stdout.
func writeOutput(cmd *cobra.Command, format string, v any) error {
	w := cmd.OutOrStdout()
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return oops.Code("OUTPUT_FAILED").With("format", format).Wrap(err)
		}
		return oops.Wrap(enc.Close())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return oops.Code("OUTPUT_FAILED").With("format", format).Wrap(err)
	}
	return nil
}

// report writes res and turns an unsuccessful result into a command error so
// the process exits non-zero.
func report(cmd *cobra.Command, format string, res app.Result, v any) error {
	if err := writeOutput(cmd, format, v); err != nil {
		return err
	}
	if !res.Success {
		return oops.Code("OPERATION_FAILED").
			With("status", string(res.Status)).
			Errorf("%s: %s", res.Status, res.Message)
	}
	return nil
}
