// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

//go:build integration

package integration

import (
	"context"
	"os/exec"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/amosmoyo/ProjectManagement/internal/store"
)

var _ = Describe("Migrations", func() {
	It("reports no pending migrations after setup", func() {
		m, err := store.NewMigrator(env.connStr)
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = m.Close() }()

		pending, err := m.Pending()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(BeEmpty())

		version, dirty, err := m.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(dirty).To(BeFalse())
		Expect(version).To(BeNumerically(">=", 4))
	})

	It("runs migrate status through the CLI", func() {
		cmd := exec.CommandContext(context.Background(), "go", "run", ".", "migrate", "status")
		cmd.Dir = "../../cmd/projectmanagement"
		cmd.Env = append(cmd.Environ(), "DATABASE_URL="+env.connStr)

		output, err := cmd.CombinedOutput()
		Expect(err).NotTo(HaveOccurred(), "migrate status failed: %s", string(output))
		Expect(string(output)).To(ContainSubstring("clean"))
	})

	It("seeds roles idempotently through the CLI", func() {
		for range 2 {
			cmd := exec.CommandContext(context.Background(), "go", "run", ".", "seed")
			cmd.Dir = "../../cmd/projectmanagement"
			cmd.Env = append(cmd.Environ(), "DATABASE_URL="+env.connStr)

			output, err := cmd.CombinedOutput()
			Expect(err).NotTo(HaveOccurred(), "seed failed: %s", string(output))
			Expect(string(output)).To(ContainSubstring("Roles seeded"))
		}

		var count int
		Expect(env.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM roles").Scan(&count)).To(Succeed())
		Expect(count).To(Equal(3))
	})
})
