// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package app

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

// Register creates a principal with its profile and returns a token.
func (a *App) Register(ctx context.Context, req auth.RegisterRequest) AuthResult {
	start := a.now()
	res, err := a.auth.Register(ctx, req)
	if err != nil {
		out := AuthResult{Result: a.failed(ctx, OpRegister, err)}
		a.observe(OpRegister, start, out.Status)
		return out
	}
	out := authResult(res, "registration successful")
	a.observe(OpRegister, start, out.Status)
	return out
}

// Login authenticates a principal and returns a token.
func (a *App) Login(ctx context.Context, req auth.LoginRequest) AuthResult {
	start := a.now()
	res, err := a.auth.Login(ctx, req)
	if err != nil {
		out := AuthResult{Result: a.failed(ctx, OpLogin, err)}
		a.observe(OpLogin, start, out.Status)
		return out
	}
	out := authResult(res, "login successful")
	a.observe(OpLogin, start, out.Status)
	return out
}

// Authorize verifies a bearer token and requires one of roles. With no roles
// any valid token passes. A "Bearer " prefix is accepted.
func (a *App) Authorize(ctx context.Context, token string, roles ...auth.Role) AccessResult {
	start := a.now()
	token = strings.TrimSpace(token)
	if rest, ok := cutPrefixFold(token, "Bearer "); ok {
		token = strings.TrimSpace(rest)
	}

	claims, err := a.auth.Authorize(token, roles...)
	if err != nil {
		out := AccessResult{Result: a.failed(ctx, OpAuthorize, err)}
		a.observe(OpAuthorize, start, out.Status)
		return out
	}
	out := AccessResult{
		Result:      succeeded("authorized"),
		PrincipalID: claims.Subject,
		Email:       claims.Email,
		Roles:       roleNames(claims.RoleSet()),
	}
	a.observe(OpAuthorize, start, out.Status)
	return out
}

func authResult(res *auth.AuthResult, message string) AuthResult {
	out := AuthResult{
		Result:      succeeded(message),
		Token:       res.Token,
		PrincipalID: res.PrincipalID.String(),
		Email:       res.Email,
		UserType:    res.UserType.String(),
		Roles:       roleNames(res.Roles),
	}
	if !res.ExpiresAt.IsZero() {
		expires := res.ExpiresAt
		out.ExpiresAt = &expires
	}
	if res.ProfileID != (ulid.ULID{}) {
		out.ProfileID = res.ProfileID.String()
	}
	return out
}

func roleNames(roles []auth.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return names
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
