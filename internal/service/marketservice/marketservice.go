package marketservice

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/GlebRadaev/packmarket/internal/domain"
	"github.com/GlebRadaev/packmarket/internal/metrics"
	"github.com/GlebRadaev/packmarket/internal/pg"
)

//go:generate mockgen -source=marketservice.go -destination=mock_marketservice.go -package=marketservice

type CatalogCache interface {
	GetPack(packID int) (*domain.PackSnapshot, error)
}

type Drawer interface {
	Draw(pool []domain.ItemWeight, rarities map[int]domain.Rarity, count int, declaredTotal, booster float64) ([]domain.DrawResult, error)
}

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error)
	DebitTokens(ctx context.Context, userID string, amount int64) (*domain.Balance, error)
	ConvertDiamonds(ctx context.Context, userID string, diamonds, rate int64) (*domain.Balance, error)
}

type StatisticsRepo interface {
	IncrementPacksOpened(ctx context.Context, userID string) (int64, error)
	GetPacksOpened(ctx context.Context, userID string) (int64, error)
}

type ItemRepo interface {
	NextSerial(ctx context.Context, itemID int, shiny bool) (int64, error)
	CreateOwnedItem(ctx context.Context, item *domain.OwnedItem) (*domain.OwnedItem, error)
}

type Notifier interface {
	NotifyRarePull(ctx context.Context, userID string, item domain.ItemWeight) error
}

type Config struct {
	TxTimeout           time.Duration
	DiamondExchangeRate int64
}

type Service struct {
	catalog     CatalogCache
	drawer      Drawer
	balanceRepo BalanceRepo
	statsRepo   StatisticsRepo
	itemRepo    ItemRepo
	txManager   pg.TXManager
	notifier    Notifier
	metrics     *metrics.Metrics
	cfg         Config
}

func New(
	catalog CatalogCache,
	drawer Drawer,
	balanceRepo BalanceRepo,
	statsRepo StatisticsRepo,
	itemRepo ItemRepo,
	txManager pg.TXManager,
	notifier Notifier,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	return &Service{
		catalog:     catalog,
		drawer:      drawer,
		balanceRepo: balanceRepo,
		statsRepo:   statsRepo,
		itemRepo:    itemRepo,
		txManager:   txManager,
		notifier:    notifier,
		metrics:     m,
		cfg:         cfg,
	}
}

// OpenPack spends the pack price from the user's tokens and mints the drawn
// items. Validation and the draw happen before any transaction; the debit,
// the statistics bump and every mint commit together or not at all.
func (s *Service) OpenPack(ctx context.Context, userID string, packID int) (*domain.OpenPackResult, error) {
	start := time.Now()
	result, err := s.openPack(ctx, userID, packID)
	s.metrics.ObserveOpenPack(err, time.Since(start))
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveMinted(result.Items)
	return result, nil
}

func (s *Service) openPack(ctx context.Context, userID string, packID int) (*domain.OpenPackResult, error) {
	snap, err := s.catalog.GetPack(packID)
	if err != nil {
		return nil, err
	}
	pack := snap.Pack
	if !pack.Enabled {
		return nil, domain.ErrUnknownPack
	}

	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if balance == nil {
		return nil, domain.ErrUnknownUser
	}
	if balance.Tokens < pack.Price {
		return nil, domain.ErrInsufficientFunds
	}

	draws, err := s.drawer.Draw(pack.Items, snap.Rarities, pack.Draws(), pack.TotalWeight, pack.BoosterMultiplier())
	if err != nil {
		zap.L().Error("Pack catalog is corrupted, refusing to draw",
			zap.Int("packID", packID), zap.String("pack", pack.Name), zap.Error(err))
		return nil, errors.WithSecondaryError(errors.Wrapf(domain.ErrCatalogCorrupted, "pack %d", packID), err)
	}

	result, err := s.persist(ctx, userID, pack, draws)
	if err != nil {
		return nil, err
	}

	for _, d := range draws {
		if !d.Item.Notable() {
			continue
		}
		if err := s.notifier.NotifyRarePull(ctx, userID, d.Item); err != nil {
			zap.L().Error("Failed to hand rare pull to notifier",
				zap.String("userID", userID), zap.Int("itemID", d.Item.ItemID), zap.Error(err))
		}
	}
	return result, nil
}

func (s *Service) persist(ctx context.Context, userID string, pack domain.Pack, draws []domain.DrawResult) (*domain.OpenPackResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
	defer cancel()

	var result *domain.OpenPackResult
	err := s.txManager.BeginSerializable(txCtx, func(ctx context.Context) error {
		// The closure may run again on conflict, so it starts from scratch.
		result = nil

		balance, err := s.balanceRepo.DebitTokens(ctx, userID, pack.Price)
		if err != nil {
			return err
		}
		if balance == nil {
			return domain.ErrBalanceChanged
		}

		if _, err := s.statsRepo.IncrementPacksOpened(ctx, userID); err != nil {
			return err
		}

		items := make([]domain.OwnedItem, 0, len(draws))
		for _, d := range draws {
			serial, err := s.itemRepo.NextSerial(ctx, d.Item.ItemID, d.Shiny)
			if err != nil {
				return err
			}
			item, err := s.itemRepo.CreateOwnedItem(ctx, &domain.OwnedItem{
				UserID:            userID,
				InitialObtainerID: userID,
				ItemID:            d.Item.ItemID,
				Shiny:             d.Shiny,
				ObtainedBy:        domain.ObtainMethodPackOpen,
				Serial:            serial,
			})
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		result = &domain.OpenPackResult{Items: items, Tokens: balance.Tokens}
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, domain.ErrBalanceChanged):
		return nil, err
	case errors.Is(err, pg.ErrTxConflict):
		zap.L().Warn("Serial allocation retries exhausted", zap.String("userID", userID), zap.Int("packID", pack.ID))
		return nil, errors.WithSecondaryError(domain.ErrSerialAllocationFailed, err)
	case errors.Is(txCtx.Err(), context.DeadlineExceeded):
		zap.L().Error("Open pack transaction timed out", zap.String("userID", userID), zap.Int("packID", pack.ID))
		return nil, errors.WithSecondaryError(domain.ErrTransactionTimeout, err)
	default:
		zap.L().Error("Open pack transaction failed", zap.String("userID", userID), zap.Int("packID", pack.ID), zap.Error(err))
		return nil, errors.Wrap(err, "failed to persist pack opening")
	}
}

// ConvertDiamonds exchanges amount diamonds for tokens at the configured rate.
func (s *Service) ConvertDiamonds(ctx context.Context, userID string, amount int64) (*domain.Balance, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	current, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if current == nil {
		return nil, domain.ErrUnknownUser
	}
	if current.Diamonds < amount {
		return nil, domain.ErrInsufficientDiamonds
	}

	balance, err := s.balanceRepo.ConvertDiamonds(ctx, userID, amount, s.cfg.DiamondExchangeRate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert diamonds")
	}
	if balance == nil {
		return nil, domain.ErrInsufficientDiamonds
	}
	return balance, nil
}

func (s *Service) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrUnknownUser
	}
	balance.PacksOpened, err = s.statsRepo.GetPacksOpened(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get packs opened", zap.Error(err))
		return nil, err
	}
	return balance, nil
}
