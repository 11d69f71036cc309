// Package catalog keeps a read-mostly, point-in-time copy of the pack and
// rarity definitions.
//
// Readers load the current snapshot through an atomic pointer and never take
// a lock. Refresh swaps in a complete new snapshot, so a reader always sees
// one pack together with the rarity table that was loaded with it. Snapshots
// older than the staleness window are refused rather than served.
package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/packmarket/internal/domain"
)

//go:generate mockgen -source=catalog.go -destination=mock_catalog.go -package=catalog

type Source interface {
	LoadPacks(ctx context.Context) ([]domain.Pack, error)
	LoadRarities(ctx context.Context) ([]domain.Rarity, error)
	// Invalidations signals that the stored catalog changed. A nil channel
	// means the source never signals.
	Invalidations(ctx context.Context) <-chan struct{}
}

type snapshot struct {
	packs    map[int]domain.Pack
	rarities map[int]domain.Rarity
	loadedAt time.Time
}

type Cache struct {
	source          Source
	current         atomic.Pointer[snapshot]
	refreshInterval time.Duration
	maxStaleness    time.Duration
	now             func() time.Time
}

func New(source Source, refreshInterval, maxStaleness time.Duration) *Cache {
	return &Cache{
		source:          source,
		refreshInterval: refreshInterval,
		maxStaleness:    maxStaleness,
		now:             time.Now,
	}
}

// GetPack returns the pack and the rarity table of the current snapshot.
// The returned values are shared and must not be modified.
func (c *Cache) GetPack(packID int) (*domain.PackSnapshot, error) {
	snap := c.current.Load()
	if snap == nil || c.now().Sub(snap.loadedAt) > c.maxStaleness {
		return nil, domain.ErrCatalogUnavailable
	}
	pack, ok := snap.packs[packID]
	if !ok {
		return nil, domain.ErrUnknownPack
	}
	return &domain.PackSnapshot{Pack: pack, Rarities: snap.rarities}, nil
}

// Refresh loads a new snapshot. On failure the previous snapshot stays in
// place until it ages out.
func (c *Cache) Refresh(ctx context.Context) error {
	packs, err := c.source.LoadPacks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load packs: %w", err)
	}
	rarities, err := c.source.LoadRarities(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rarities: %w", err)
	}

	snap := &snapshot{
		packs:    make(map[int]domain.Pack, len(packs)),
		rarities: make(map[int]domain.Rarity, len(rarities)),
		loadedAt: c.now(),
	}
	for _, p := range packs {
		snap.packs[p.ID] = p
	}
	for _, r := range rarities {
		snap.rarities[r.ID] = r
	}
	c.current.Store(snap)

	zap.L().Debug("catalog refreshed", zap.Int("packs", len(packs)), zap.Int("rarities", len(rarities)))
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.Refresh(ctx)
}

func (c *Cache) Start(ctx context.Context) {
	zap.L().Info("Catalog refresher started")
	go c.run(ctx)
}

func (c *Cache) run(ctx context.Context) {
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	invalidations := c.source.Invalidations(ctx)
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping catalog refresher")
			return
		case <-ticker.C:
			c.refresh(ctx)
		case _, ok := <-invalidations:
			if !ok {
				invalidations = nil
				continue
			}
			c.refresh(ctx)
		}
	}
}

func (c *Cache) refresh(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		zap.L().Error("Failed to refresh catalog", zap.Error(err))
	}
}
