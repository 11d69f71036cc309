package itemrepo

import (
	"context"

	"github.com/GlebRadaev/packmarket/internal/domain"
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

// NextSerial bumps the counter of the (itemID, shiny) pair and returns the new
// value. The first allocation continues from the highest serial already
// minted for the pair. Call it inside TXManager.BeginSerializable so the bump
// and the owned item insert commit together.
func (r *Repository) NextSerial(ctx context.Context, itemID int, shiny bool) (int64, error) {
	query := `
		INSERT INTO item_serials (item_id, shiny, last_serial)
		VALUES ($1, $2, COALESCE((SELECT MAX(serial) FROM owned_items WHERE item_id = $1 AND shiny = $2), 0) + 1)
		ON CONFLICT (item_id, shiny) DO UPDATE SET last_serial = item_serials.last_serial + 1
		RETURNING last_serial
	`
	var serial int64
	err := r.db.QueryRow(ctx, query, itemID, shiny).Scan(&serial)
	if err != nil {
		zap.L().Error("failed to allocate serial", zap.Int("itemID", itemID), zap.Bool("shiny", shiny), zap.Error(err))
		return 0, err
	}
	return serial, nil
}

func (r *Repository) CreateOwnedItem(ctx context.Context, item *domain.OwnedItem) (*domain.OwnedItem, error) {
	query := `
		INSERT INTO owned_items (user_id, initial_obtainer_id, item_id, shiny, obtained_by, serial)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, item.UserID, item.InitialObtainerID, item.ItemID, item.Shiny, item.ObtainedBy, item.Serial).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		zap.L().Error("can't save owned item", zap.Int("itemID", item.ItemID), zap.Int64("serial", item.Serial), zap.Error(err))
		return nil, err
	}
	return item, nil
}
