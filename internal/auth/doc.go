// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package auth provides identity and authentication for ProjectManagement.
//
// # Domain Types
//
// A Principal is the credential record behind every account. It holds the
// email, password hash and brute-force counters, and is created with
// NewPrincipal. Roles form a closed set (Developer, Admin, ProjectManager);
// the user type chosen at registration is parsed once with ParseUserType and
// maps to exactly one Role.
//
// # Services
//
//   - Service - registration and login
//   - TokenIssuer - HS256 bearer token minting and verification
//   - SeedRoles - idempotent bootstrap of the role registry
//
// Registration writes the principal, its role grant and the matching profile
// in one transaction. Profiles live in package team and are reached through
// the ProfileWriter interface.
package auth
