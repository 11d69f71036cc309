package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

//go:generate mockgen -source=txmanager.go -destination=mock_txmanager.go -package=pg

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"

	defaultMaxRetries = 5
	defaultBaseDelay  = 10 * time.Millisecond
	maxRetryDelay     = time.Second
)

var ErrTxConflict = errors.New("transaction conflict: retries exhausted")

type TransactionalFn func(ctx context.Context) error

type TXManager interface {
	// Begin runs fn in a read-committed transaction.
	Begin(ctx context.Context, fn TransactionalFn) error
	// BeginSerializable runs fn in a serializable transaction and reruns it
	// from scratch on serialization failures.
	BeginSerializable(ctx context.Context, fn TransactionalFn) error
}

type Beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Option func(*txManager)

func WithRetry(maxRetries uint64, baseDelay time.Duration) Option {
	return func(m *txManager) {
		m.maxRetries = maxRetries
		m.baseDelay = baseDelay
	}
}

type txManager struct {
	db         Beginner
	maxRetries uint64
	baseDelay  time.Duration
}

func NewTXManager(db Beginner, opts ...Option) TXManager {
	m := &txManager{
		db:         db,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *txManager) Begin(ctx context.Context, fn TransactionalFn) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (m *txManager) BeginSerializable(ctx context.Context, fn TransactionalFn) error {
	return RetrySerializable(ctx, m.maxRetries, m.baseDelay, func(ctx context.Context) error {
		return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
	})
}

// RetrySerializable reruns attempt while it fails with a serialization
// failure, backing off exponentially up to maxRetryDelay between attempts.
// Exhausting maxRetries yields ErrTxConflict.
func RetrySerializable(ctx context.Context, maxRetries uint64, baseDelay time.Duration, attempt TransactionalFn) error {
	attempts := 0
	backoff := retry.WithMaxRetries(maxRetries,
		retry.WithCappedDuration(maxRetryDelay, retry.WithJitterPercent(20, retry.NewExponential(baseDelay))))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		err := attempt(ctx)
		if IsSerializationFailure(err) {
			zap.L().Debug("serialization failure, retrying transaction", zap.Int("attempt", attempts), zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
	if IsSerializationFailure(err) {
		return fmt.Errorf("%w after %d attempts: %w", ErrTxConflict, attempts, err)
	}
	return err
}

func (m *txManager) run(ctx context.Context, opts pgx.TxOptions, fn TransactionalFn) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// rollback survives a cancelled or expired ctx.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		zap.L().Error("failed to rollback transaction", zap.Error(err))
	}
}

func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
}
