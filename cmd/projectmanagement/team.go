// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

// tokenEnv is read when --token is not given. It sits outside the PM_
// configuration prefix so it never lands in the config tree.
const tokenEnv = "PROJECTMANAGEMENT_TOKEN"

// NewAssignCmd creates the assign subcommand.
func NewAssignCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "assign MANAGER_ID DEVELOPER_ID",
		Short: "Assign a developer to a project manager",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.AssignDeveloper(ctx, args[0], args[1])
				return report(cmd, opts.output, res.Result, res)
			})
		},
	}
	addTokenFlag(cmd, &token)
	return cmd
}

// NewUnassignCmd creates the unassign subcommand.
func NewUnassignCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "unassign MANAGER_ID DEVELOPER_ID",
		Short: "End a developer's assignment to a project manager",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.UnassignDeveloper(ctx, args[0], args[1])
				return report(cmd, opts.output, res.Result, res)
			})
		},
	}
	addTokenFlag(cmd, &token)
	return cmd
}

// NewDevelopersCmd creates the developers command group.
func NewDevelopersCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "developers",
		Short: "Query developers",
	}
	cmd.PersistentFlags().StringVar(&token, "token", "", "bearer token with the ProjectManager role (default $"+tokenEnv+")")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List developers with their active project managers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.GetAllDevelopers(ctx)
				return report(cmd, opts.output, res.Result, res)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get DEVELOPER_ID",
		Short: "Show one developer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.GetDeveloperByID(ctx, args[0])
				return report(cmd, opts.output, res.Result, res)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "managers DEVELOPER_ID",
		Short: "List the active project managers of a developer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.GetManagersForDeveloper(ctx, args[0])
				return report(cmd, opts.output, res.Result, res)
			})
		},
	})
	return cmd
}

// NewManagersCmd creates the managers command group.
func NewManagersCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "managers",
		Short: "Query project managers",
	}
	cmd.PersistentFlags().StringVar(&token, "token", "", "bearer token with the ProjectManager role (default $"+tokenEnv+")")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List project managers with their active developers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.GetAllManagers(ctx)
				return report(cmd, opts.output, res.Result, res)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get MANAGER_ID",
		Short: "Show one project manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.GetManagerByID(ctx, args[0])
				return report(cmd, opts.output, res.Result, res)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "developers MANAGER_ID",
		Short: "List the active developers of a project manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManagerAccess(cmd, opts, deps, token, func(ctx context.Context, f Facade) error {
				res := f.GetDevelopersForManager(ctx, args[0])
				return report(cmd, opts.output, res.Result, res)
			})
		},
	})
	return cmd
}

func addTokenFlag(cmd *cobra.Command, token *string) {
	cmd.Flags().StringVar(token, "token", "", "bearer token with the ProjectManager role (default $"+tokenEnv+")")
}

// withManagerAccess runs fn only for a token carrying the ProjectManager role.
func withManagerAccess(cmd *cobra.Command, opts *globalOptions, deps *Deps, token string, fn func(context.Context, Facade) error) error {
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	return withFacade(cmd, opts, deps, func(ctx context.Context, f Facade) error {
		access := f.Authorize(ctx, token, auth.RoleProjectManager)
		if !access.Success {
			return report(cmd, opts.output, access.Result, access)
		}
		return fn(ctx, f)
	})
}
