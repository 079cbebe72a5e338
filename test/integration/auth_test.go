// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

//go:build integration

package integration

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/amosmoyo/ProjectManagement/internal/app"
	"github.com/amosmoyo/ProjectManagement/internal/auth"
)

var _ = Describe("Authentication", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		cleanupDatabase(ctx, env.pool)
	})

	Describe("Register", func() {
		It("creates a developer with profile and role", func() {
			res := registerDeveloper(ctx, "dev@example.com")

			Expect(res.Status).To(Equal(app.StatusOK))
			Expect(res.Token).NotTo(BeEmpty())
			Expect(res.UserType).To(Equal("Developer"))
			Expect(res.Roles).To(ConsistOf(string(auth.RoleDeveloper)))
			Expect(res.ProfileID).NotTo(BeEmpty())

			var skill, specialization string
			var years int
			err := env.pool.QueryRow(ctx,
				"SELECT skill_level, specialization, years_of_experience FROM developer_profiles WHERE id = $1",
				res.ProfileID,
			).Scan(&skill, &specialization, &years)
			Expect(err).NotTo(HaveOccurred())
			Expect(skill).To(Equal("Senior"))
			Expect(specialization).To(Equal("Backend"))
			Expect(years).To(Equal(7))
		})

		It("creates a project manager with profile defaults", func() {
			res := registerManager(ctx, "pm@example.com")
			Expect(res.Roles).To(ConsistOf(string(auth.RoleProjectManager)))

			var skill string
			var years int
			err := env.pool.QueryRow(ctx,
				"SELECT skill_level, years_of_experience FROM project_manager_profiles WHERE id = $1",
				res.ProfileID,
			).Scan(&skill, &years)
			Expect(err).NotTo(HaveOccurred())
			Expect(skill).NotTo(BeEmpty())
			Expect(years).To(Equal(0))
		})

		It("rejects a duplicate email in any casing", func() {
			registerDeveloper(ctx, "dup@example.com")

			res := env.app.Register(ctx, auth.RegisterRequest{
				Email:      strings.ToUpper("dup@example.com"),
				Password:   "Sup3rSecret",
				FirstName:  "Other",
				UserType:   "ProjectManager",
				Department: "Delivery",
			})
			Expect(res.Success).To(BeFalse())
			Expect(res.Status).To(Equal(app.StatusConflict))

			var count int
			Expect(env.pool.QueryRow(ctx, "SELECT COUNT(*) FROM principals").Scan(&count)).To(Succeed())
			Expect(count).To(Equal(1))
			Expect(env.pool.QueryRow(ctx, "SELECT COUNT(*) FROM project_manager_profiles").Scan(&count)).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("rejects a weak password without writing anything", func() {
			res := env.app.Register(ctx, auth.RegisterRequest{
				Email:      "weak@example.com",
				Password:   "short",
				FirstName:  "Weak",
				UserType:   "Developer",
				Department: "Engineering",
			})
			Expect(res.Status).To(Equal(app.StatusValidationError))

			var count int
			Expect(env.pool.QueryRow(ctx, "SELECT COUNT(*) FROM principals").Scan(&count)).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			registerDeveloper(ctx, "login@example.com")
		})

		It("issues a token that authorizes the principal's role", func() {
			res := env.app.Login(ctx, auth.LoginRequest{Email: "LOGIN@example.com", Password: "Sup3rSecret"})
			Expect(res.Status).To(Equal(app.StatusOK))

			access := env.app.Authorize(ctx, "Bearer "+res.Token, auth.RoleDeveloper)
			Expect(access.Success).To(BeTrue())
			Expect(access.Email).To(Equal("login@example.com"))

			access = env.app.Authorize(ctx, res.Token, auth.RoleProjectManager)
			Expect(access.Status).To(Equal(app.StatusForbidden))
		})

		It("does not reveal whether the email exists", func() {
			unknown := env.app.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "Sup3rSecret"})
			wrong := env.app.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "Wr0ngSecret"})

			Expect(unknown.Status).To(Equal(app.StatusUnauthorized))
			Expect(wrong.Status).To(Equal(app.StatusUnauthorized))
			Expect(unknown.Message).To(Equal(wrong.Message))
		})

		It("locks the account after repeated failures", func() {
			for range 5 {
				res := env.app.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "Wr0ngSecret"})
				Expect(res.Status).To(Equal(app.StatusUnauthorized))
			}

			res := env.app.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "Sup3rSecret"})
			Expect(res.Status).To(Equal(app.StatusLockedOut))

			var lockedUntil *string
			Expect(env.pool.QueryRow(ctx,
				"SELECT locked_until::text FROM principals WHERE LOWER(email) = 'login@example.com'",
			).Scan(&lockedUntil)).To(Succeed())
			Expect(lockedUntil).NotTo(BeNil())
		})

		It("resets the failure count after a successful login", func() {
			for range 3 {
				env.app.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "Wr0ngSecret"})
			}
			res := env.app.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "Sup3rSecret"})
			Expect(res.Status).To(Equal(app.StatusOK))

			var failed int
			Expect(env.pool.QueryRow(ctx,
				"SELECT failed_attempts FROM principals WHERE LOWER(email) = 'login@example.com'",
			).Scan(&failed)).To(Succeed())
			Expect(failed).To(BeZero())
		})
	})
})
