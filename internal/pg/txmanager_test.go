package pg

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updateQuery = `UPDATE users SET tokens = tokens - 1 WHERE id = $1`

func execInTx(ctx context.Context) error {
	tx, ok := TxFromContext(ctx)
	if !ok {
		return errors.New("no transaction in context")
	}
	_, err := tx.Exec(ctx, updateQuery, "user-1")
	return err
}

func serializationFailure() error {
	return &pgconn.PgError{Code: sqlStateSerializationFailure, Message: "could not serialize access"}
}

func TestTXManager_Begin(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
	}{
		{
			name: "Commits on success",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Rolls back when fn fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectErr: true,
		},
		{
			name: "Begin error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted}).WillReturnError(errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)
			err = NewTXManager(mock).Begin(context.Background(), execInTx)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTXManager_BeginSerializable(t *testing.T) {
	serializable := pgx.TxOptions{IsoLevel: pgx.Serializable}

	tests := []struct {
		name        string
		maxRetries  uint64
		mockSetup   func(mock pgxmock.PgxPoolIface)
		expectedErr error
		expectErr   bool
	}{
		{
			name:       "Succeeds first time",
			maxRetries: 3,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(serializable)
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name:       "Retries after serialization failure",
			maxRetries: 3,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(serializable)
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnError(serializationFailure())
				mock.ExpectRollback()
				mock.ExpectBeginTx(serializable)
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name:       "Retries after conflicting commit",
			maxRetries: 3,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(serializable)
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit().WillReturnError(serializationFailure())
				mock.ExpectBeginTx(serializable)
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name:       "Retries exhausted",
			maxRetries: 2,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				for range 3 {
					mock.ExpectBeginTx(serializable)
					mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnError(serializationFailure())
					mock.ExpectRollback()
				}
			},
			expectedErr: ErrTxConflict,
			expectErr:   true,
		},
		{
			name:       "Other errors are not retried",
			maxRetries: 3,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBeginTx(serializable)
				mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WithArgs("user-1").WillReturnError(errors.New("check constraint violated"))
				mock.ExpectRollback()
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)
			manager := NewTXManager(mock, WithRetry(tt.maxRetries, time.Millisecond))
			err = manager.BeginSerializable(context.Background(), execInTx)

			if tt.expectErr {
				assert.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				} else {
					assert.NotErrorIs(t, err, ErrTxConflict)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(serializationFailure()))
	assert.True(t, IsSerializationFailure(&pgconn.PgError{Code: sqlStateDeadlockDetected}))
	assert.False(t, IsSerializationFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("other")))
	assert.False(t, IsSerializationFailure(nil))
}

func TestTxFromContext(t *testing.T) {
	_, ok := TxFromContext(context.Background())
	assert.False(t, ok)
}

func TestRetrySerializable(t *testing.T) {
	tests := []struct {
		name         string
		failures     int
		maxRetries   uint64
		wantAttempts int
		expectedErr  error
	}{
		{name: "No failure runs once", failures: 0, maxRetries: 3, wantAttempts: 1},
		{name: "Recovers after failures", failures: 2, maxRetries: 3, wantAttempts: 3},
		{name: "Gives up after max retries", failures: 10, maxRetries: 3, wantAttempts: 4, expectedErr: ErrTxConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := RetrySerializable(context.Background(), tt.maxRetries, time.Microsecond, func(ctx context.Context) error {
				attempts++
				if attempts <= tt.failures {
					return serializationFailure()
				}
				return nil
			})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}
