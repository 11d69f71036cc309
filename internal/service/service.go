package service

import (
	"github.com/GlebRadaev/packmarket/internal/draw"
	"github.com/GlebRadaev/packmarket/internal/handlers/market"
	"github.com/GlebRadaev/packmarket/internal/metrics"
	"github.com/GlebRadaev/packmarket/internal/pg"
	"github.com/GlebRadaev/packmarket/internal/repo"
	"github.com/GlebRadaev/packmarket/internal/service/marketservice"
)

type Services struct {
	MarketService market.Service
}

func New(
	repo *repo.Repositories,
	catalog marketservice.CatalogCache,
	notifier marketservice.Notifier,
	txManager pg.TXManager,
	m *metrics.Metrics,
	cfg marketservice.Config,
) *Services {
	marketService := marketservice.New(
		catalog,
		draw.NewEngine(),
		repo.BalanceRepo,
		repo.StatsRepo,
		repo.ItemRepo,
		txManager,
		notifier,
		m,
		cfg,
	)

	return &Services{
		MarketService: marketService,
	}
}
