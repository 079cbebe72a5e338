// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

//go:build integration

package integration

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/amosmoyo/ProjectManagement/internal/app"
	"github.com/amosmoyo/ProjectManagement/internal/team"
)

var _ = Describe("Team assignments", func() {
	var (
		ctx   context.Context
		devID string
		pmID  string
	)

	BeforeEach(func() {
		ctx = context.Background()
		cleanupDatabase(ctx, env.pool)
		devID = registerDeveloper(ctx, "dev@example.com").ProfileID
		pmID = registerManager(ctx, "pm@example.com").ProfileID
	})

	It("assigns, unassigns and reassigns a developer", func() {
		res := env.app.AssignDeveloper(ctx, pmID, devID)
		Expect(res.Outcome).To(Equal(team.OutcomeAssigned))

		managers := env.app.GetManagersForDeveloper(ctx, devID)
		Expect(managers.Success).To(BeTrue())
		Expect(managers.Data).To(HaveLen(1))
		Expect(managers.Data[0].ID.String()).To(Equal(pmID))

		res = env.app.AssignDeveloper(ctx, pmID, devID)
		Expect(res.Outcome).To(Equal(team.OutcomeAlreadyActive))

		res = env.app.UnassignDeveloper(ctx, pmID, devID)
		Expect(res.Outcome).To(Equal(team.OutcomeUnassigned))
		Expect(env.app.GetDevelopersForManager(ctx, pmID).Data).To(BeEmpty())

		res = env.app.UnassignDeveloper(ctx, pmID, devID)
		Expect(res.Status).To(Equal(app.StatusNoOp))

		res = env.app.AssignDeveloper(ctx, pmID, devID)
		Expect(res.Outcome).To(Equal(team.OutcomeReactivated))

		var rows int
		Expect(env.pool.QueryRow(ctx, "SELECT COUNT(*) FROM project_manager_developers").Scan(&rows)).To(Succeed())
		Expect(rows).To(Equal(1))
	})

	It("lists developers with their active managers", func() {
		otherPM := registerManager(ctx, "pm2@example.com").ProfileID
		Expect(env.app.AssignDeveloper(ctx, pmID, devID).Success).To(BeTrue())
		Expect(env.app.AssignDeveloper(ctx, otherPM, devID).Success).To(BeTrue())
		Expect(env.app.UnassignDeveloper(ctx, otherPM, devID).Success).To(BeTrue())

		all := env.app.GetAllDevelopers(ctx)
		Expect(all.Success).To(BeTrue())
		Expect(all.Data).To(HaveLen(1))
		Expect(all.Data[0].ProjectManagers).To(HaveLen(1))
		Expect(all.Data[0].ProjectManagers[0].Email).To(Equal("pm@example.com"))

		managers := env.app.GetAllManagers(ctx)
		Expect(managers.Data).To(HaveLen(2))

		one := env.app.GetManagerByID(ctx, pmID)
		Expect(one.Data.Developers).To(HaveLen(1))
		Expect(one.Data.Developers[0].Specialization).To(Equal("Backend"))
	})

	It("rejects links to unknown or mismatched profiles", func() {
		res := env.app.AssignDeveloper(ctx, devID, pmID)
		Expect(res.Success).To(BeFalse())
		Expect(res.Status).To(Equal(app.StatusNotFound))

		res = env.app.AssignDeveloper(ctx, "not-an-id", devID)
		Expect(res.Status).To(Equal(app.StatusValidationError))

		Expect(env.app.GetDeveloperByID(ctx, pmID).Status).To(Equal(app.StatusNotFound))
	})

	It("records operations in metrics", func() {
		before := testutil.ToFloat64(env.metrics.OperationsTotal.WithLabelValues(app.OpAssignDeveloper, string(app.StatusOK)))
		env.app.AssignDeveloper(ctx, pmID, devID)
		after := testutil.ToFloat64(env.metrics.OperationsTotal.WithLabelValues(app.OpAssignDeveloper, string(app.StatusOK)))
		Expect(after - before).To(Equal(1.0))
	})
})
