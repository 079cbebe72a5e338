// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosmoyo/ProjectManagement/internal/store"
	"github.com/amosmoyo/ProjectManagement/pkg/errutil"
)

func TestTransactor_InTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE principals`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx := store.NewTransactor(mock)
		err = tx.InTransaction(ctx, func(ctx context.Context) error {
			assert.True(t, store.InTx(ctx))
			_, execErr := store.Conn(ctx, mock).Exec(ctx, `UPDATE principals SET failed_attempts = 0`)
			return execErr
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns fn error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = store.NewTransactor(mock).InTransaction(ctx, func(context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is coded", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		called := false
		err = store.NewTransactor(mock).InTransaction(ctx, func(context.Context) error {
			called = true
			return nil
		})
		errutil.AssertErrorCode(t, err, "TX_BEGIN_FAILED")
		assert.False(t, called)
	})

	t.Run("commit failure is coded", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err = store.NewTransactor(mock).InTransaction(ctx, func(context.Context) error { return nil })
		errutil.AssertErrorCode(t, err, "TX_COMMIT_FAILED")
	})

	t.Run("nested call joins the open transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		tx := store.NewTransactor(mock)
		err = tx.InTransaction(ctx, func(outer context.Context) error {
			return tx.InTransaction(outer, func(inner context.Context) error {
				assert.True(t, store.InTx(inner))
				assert.Equal(t, store.Conn(outer, mock), store.Conn(inner, mock))
				return nil
			})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConn_WithoutTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.False(t, store.InTx(context.Background()))
	assert.Equal(t, store.Querier(mock), store.Conn(context.Background(), mock))
}

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "principals_email_lower_key"}
	fk := &pgconn.PgError{Code: "23503"}

	wrapped := oops.Code("PRINCIPAL_CREATE_FAILED").Wrap(unique)
	assert.True(t, store.IsUniqueViolation(wrapped))
	assert.False(t, store.IsForeignKeyViolation(wrapped))
	assert.Equal(t, "principals_email_lower_key", store.ConstraintName(wrapped))

	assert.True(t, store.IsForeignKeyViolation(fk))
	assert.False(t, store.IsUniqueViolation(errors.New("plain")))
	assert.Empty(t, store.ConstraintName(errors.New("plain")))
}
