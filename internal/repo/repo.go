package repo

import (
	"github.com/GlebRadaev/packmarket/internal/pg"
	balancerepo "github.com/GlebRadaev/packmarket/internal/repo/balance-repo"
	itemrepo "github.com/GlebRadaev/packmarket/internal/repo/item-repo"
	statsrepo "github.com/GlebRadaev/packmarket/internal/repo/stats-repo"
	"github.com/GlebRadaev/packmarket/internal/service/marketservice"
)

type Repositories struct {
	BalanceRepo marketservice.BalanceRepo
	StatsRepo   marketservice.StatisticsRepo
	ItemRepo    marketservice.ItemRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	balanceRepo := balancerepo.New(conn, txManager)
	statsRepo := statsrepo.New(conn)
	itemRepo := itemrepo.New(conn)

	return &Repositories{
		BalanceRepo: balanceRepo,
		StatsRepo:   statsRepo,
		ItemRepo:    itemRepo,
	}
}
