package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("emotion insert failed")
	dbErr := errors.New("connection reset")

	tests := []struct {
		name      string
		setup     func(sqlmock.Sqlmock)
		fn        TxFn
		wantErrIs []error
	}{
		{
			name: "commit",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec("INSERT INTO emotion_events").WillReturnResult(sqlmock.NewResult(0, 1))
				m.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, "INSERT INTO emotion_events (id) VALUES ($1)", 1)
				return err
			},
		},
		{
			name: "fn error rolls back",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErrIs: []error{fnErr},
		},
		{
			name: "begin fails",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin().WillReturnError(dbErr)
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return nil },
			wantErrIs: []error{dbErr, ErrTransactionFailed},
		},
		{
			name: "commit fails",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectCommit().WillReturnError(dbErr)
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return nil },
			wantErrIs: []error{dbErr, ErrTransactionFailed},
		},
		{
			name: "rollback fails",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectRollback().WillReturnError(dbErr)
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErrIs: []error{fnErr, dbErr, ErrTransactionFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setup(mock)

			err = RunInTransaction(context.Background(), db, tt.fn)
			if len(tt.wantErrIs) == 0 {
				assert.NoError(t, err)
			}
			for _, target := range tt.wantErrIs {
				assert.ErrorIs(t, err, target)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransaction_PanicRollsBack(t *testing.T) {
	t.Parallel()

	for _, rbErr := range []error{nil, errors.New("rollback failed")} {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(rbErr)

		assert.PanicsWithValue(t, "boom", func() {
			_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
}
