// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosmoyo/ProjectManagement/internal/team"
	"github.com/amosmoyo/ProjectManagement/internal/team/postgres"
	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

func TestAssignmentRepository_GetForUpdate(t *testing.T) {
	ctx := context.Background()
	pm, dev := ulid.Make(), ulid.Make()
	created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("locks existing row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT active, created_at, updated_at\s+FROM project_manager_developers\s+WHERE .*\s+FOR UPDATE`).
			WithArgs(pm.String(), dev.String()).
			WillReturnRows(pgxmock.NewRows([]string{"active", "created_at", "updated_at"}).
				AddRow(false, created, updated))

		a, err := postgres.NewAssignmentRepository(mock).GetForUpdate(ctx, pm, dev)
		require.NoError(t, err)
		assert.Equal(t, team.Assignment{
			ProjectManagerID: pm,
			DeveloperID:      dev,
			Active:           false,
			CreatedAt:        created,
			UpdatedAt:        updated,
		}, *a)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM project_manager_developers`).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewAssignmentRepository(mock).GetForUpdate(ctx, pm, dev)
		assert.ErrorIs(t, err, team.ErrNotFound)
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM project_manager_developers`).WillReturnError(errors.New("deadlock detected"))

		_, err := postgres.NewAssignmentRepository(mock).GetForUpdate(ctx, pm, dev)
		errutil.AssertErrorCode(t, err, "ASSIGNMENT_QUERY_FAILED")
		assert.NotErrorIs(t, err, team.ErrNotFound)
	})
}

func TestAssignmentRepository_Insert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	a := &team.Assignment{ProjectManagerID: ulid.Make(), DeveloperID: ulid.Make(), Active: true, CreatedAt: now, UpdatedAt: now}

	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"new row", 1, true},
		{"conflict leaves existing row", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectExec(`INSERT INTO project_manager_developers .* ON CONFLICT \(project_manager_id, developer_id\) DO NOTHING`).
				WithArgs(a.ProjectManagerID.String(), a.DeveloperID.String(), true, now, now).
				WillReturnResult(pgxmock.NewResult("INSERT", tt.affected))

			inserted, err := postgres.NewAssignmentRepository(mock).Insert(ctx, a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, inserted)
		})
	}

	t.Run("foreign key failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO project_manager_developers`).WillReturnError(errors.New("fk"))

		_, err := postgres.NewAssignmentRepository(mock).Insert(ctx, a)
		errutil.AssertErrorCode(t, err, "ASSIGNMENT_INSERT_FAILED")
	})
}

func TestAssignmentRepository_SetActive(t *testing.T) {
	ctx := context.Background()
	pm, dev := ulid.Make(), ulid.Make()
	at := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	t.Run("updates row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE project_manager_developers\s+SET active = \$3, updated_at = \$4`).
			WithArgs(pm.String(), dev.String(), false, at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewAssignmentRepository(mock).SetActive(ctx, pm, dev, false, at))
	})

	t.Run("no row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE project_manager_developers`).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := postgres.NewAssignmentRepository(mock).SetActive(ctx, pm, dev, true, at)
		assert.ErrorIs(t, err, team.ErrNotFound)
	})

	t.Run("update failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE project_manager_developers`).WillReturnError(errors.New("timeout"))

		err := postgres.NewAssignmentRepository(mock).SetActive(ctx, pm, dev, true, at)
		errutil.AssertErrorCode(t, err, "ASSIGNMENT_UPDATE_FAILED")
		errutil.AssertErrorContext(t, err, "active", true)
	})
}
