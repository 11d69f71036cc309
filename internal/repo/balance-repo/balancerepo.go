package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/packmarket/internal/domain"
	"github.com/GlebRadaev/packmarket/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, TxManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: TxManager,
	}
}

func (r *Repository) GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	query := `
        SELECT id, tokens, diamonds
        FROM users
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.UserID, &balance.Tokens, &balance.Diamonds)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// DebitTokens subtracts amount only if the balance still covers it. A nil
// balance means the debit was refused.
func (r *Repository) DebitTokens(ctx context.Context, userID string, amount int64) (*domain.Balance, error) {
	query := `
		UPDATE users
		SET tokens = tokens - $1
		WHERE id = $2 AND tokens >= $1
		RETURNING id, tokens, diamonds
	`
	row := r.db.QueryRow(ctx, query, amount, userID)
	var balance domain.Balance
	err := row.Scan(&balance.UserID, &balance.Tokens, &balance.Diamonds)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to debit tokens", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// ConvertDiamonds exchanges diamonds for tokens at rate. A nil balance means
// the user does not hold enough diamonds.
func (r *Repository) ConvertDiamonds(ctx context.Context, userID string, diamonds, rate int64) (*domain.Balance, error) {
	var updatedBalance *domain.Balance
	query := `
		UPDATE users
		SET diamonds = diamonds - $1, tokens = tokens + $1 * $2
		WHERE id = $3 AND diamonds >= $1
		RETURNING id, tokens, diamonds
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var balance domain.Balance
		row := r.db.QueryRow(ctx, query, diamonds, rate, userID)
		err := row.Scan(&balance.UserID, &balance.Tokens, &balance.Diamonds)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			zap.L().Error("failed to convert diamonds", zap.String("userID", userID), zap.Error(err))
			return err
		}
		updatedBalance = &balance
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updatedBalance, nil
}
