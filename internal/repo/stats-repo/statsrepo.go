package statsrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/GlebRadaev/packmarket/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) IncrementPacksOpened(ctx context.Context, userID string) (int64, error) {
	query := `
		INSERT INTO user_statistics (id, packs_opened)
		VALUES ($1, 1)
		ON CONFLICT (id) DO UPDATE SET packs_opened = user_statistics.packs_opened + 1
		RETURNING packs_opened
	`
	var packsOpened int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&packsOpened)
	if err != nil {
		zap.L().Error("failed to increment packs opened", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	return packsOpened, nil
}

func (r *Repository) GetPacksOpened(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT packs_opened
		FROM user_statistics
		WHERE id = $1
	`
	var packsOpened int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&packsOpened)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		zap.L().Error("failed to get packs opened", zap.String("userID", userID), zap.Error(err))
		return 0, err
	}
	return packsOpened, nil
}
