// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

// passwordInput lets a password come from a flag or stdin.
type passwordInput struct {
	value     string
	fromStdin bool
}

func (p *passwordInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.value, "password", "", "password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&p.fromStdin, "password-stdin", false, "read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}

func (p *passwordInput) read(in io.Reader) (string, error) {
	if !p.fromStdin {
		return p.value, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", oops.Code("PASSWORD_READ_FAILED").Wrap(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var (
		req      auth.RegisterRequest
		years    int
		password passwordInput
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a developer or project manager",
		Long: `Creates a principal with exactly one role and its profile, then prints
a bearer token. --user-type is Developer or ProjectManager.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := password.read(cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Password = pw
			if cmd.Flags().Changed("years-of-experience") {
				req.YearsOfExperience = &years
			}

			return withFacade(cmd, opts, deps, func(ctx context.Context, f Facade) error {
				res := f.Register(ctx, req)
				return report(cmd, opts.output, res.Result, res)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "email address")
	flags.StringVar(&req.FirstName, "first-name", "", "first name")
	flags.StringVar(&req.LastName, "last-name", "", "last name")
	flags.StringVar(&req.UserType, "user-type", "", "Developer or ProjectManager")
	flags.StringVar(&req.Department, "department", "", "department")
	flags.StringVar(&req.SkillLevel, "skill-level", "", "skill level (default Junior)")
	flags.StringVar(&req.Specialization, "specialization", "", "developer specialization (default Backend)")
	flags.IntVar(&years, "years-of-experience", 0, "years of experience")
	password.register(cmd)

	return cmd
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd(opts *globalOptions, deps *Deps) *cobra.Command {
	var (
		req      auth.LoginRequest
		password passwordInput
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := password.read(cmd.InOrStdin())
			if err != nil {
				return err
			}
			req.Password = pw

			return withFacade(cmd, opts, deps, func(ctx context.Context, f Facade) error {
				res := f.Login(ctx, req)
				return report(cmd, opts.output, res.Result, res)
			})
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	password.register(cmd)

	return cmd
}

// withFacade loads configuration, opens the services and calls fn.
func withFacade(cmd *cobra.Command, opts *globalOptions, deps *Deps, fn func(context.Context, Facade) error) error {
	cfg, logger, err := loadAppConfig(cmd, opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	f, closeFn, err := deps.OpenApp(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, f)
}
