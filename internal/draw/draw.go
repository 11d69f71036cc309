// Package draw implements weighted item selection for pack openings.
//
// Draw is a pure function over an explicit random source; Engine wraps it with
// a freshly seeded source per call for production use.
package draw

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"

	"github.com/GlebRadaev/packmarket/internal/domain"
)

const weightEpsilon = 1e-9

var (
	ErrEmptyPool      = errors.New("item pool is empty")
	ErrWeightMismatch = errors.New("declared total weight does not match pool")
	ErrInvalidWeight  = errors.New("item weight must be positive")
	ErrInvalidCount   = errors.New("draw count must be positive")
	ErrUnknownRarity  = errors.New("item references unknown rarity")
)

// Draw selects count items from pool with replacement. Selection is
// proportional to weight, ties resolved by pool order. Each selected item
// rolls shiny independently with probability shinyProbability*booster capped
// at 1. A zero declaredTotal skips the total check.
func Draw(rng *rand.Rand, pool []domain.ItemWeight, rarities map[int]domain.Rarity, count int, declaredTotal, booster float64) ([]domain.DrawResult, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if count < 1 {
		return nil, errors.Wrapf(ErrInvalidCount, "count %d", count)
	}

	var total float64
	for _, item := range pool {
		if item.Weight <= 0 || math.IsNaN(item.Weight) || math.IsInf(item.Weight, 0) {
			return nil, errors.Wrapf(ErrInvalidWeight, "item %d weight %v", item.ItemID, item.Weight)
		}
		if _, ok := rarities[item.RarityID]; !ok {
			return nil, errors.Wrapf(ErrUnknownRarity, "item %d rarity %d", item.ItemID, item.RarityID)
		}
		total += item.Weight
	}
	if declaredTotal > 0 && math.Abs(total-declaredTotal) > weightEpsilon*math.Max(total, declaredTotal) {
		return nil, errors.Wrapf(ErrWeightMismatch, "declared %v, actual %v", declaredTotal, total)
	}
	if booster < 1 {
		booster = 1
	}

	results := make([]domain.DrawResult, 0, count)
	for range count {
		item := pick(pool, rng.Float64()*total)
		rarity := rarities[item.RarityID]
		chance := math.Min(1, rarity.ShinyProbability*booster)
		results = append(results, domain.DrawResult{
			Item:   item,
			Shiny:  rng.Float64() < chance,
			Rarity: rarity,
		})
	}
	return results, nil
}

// pick returns the first item whose cumulative weight exceeds v.
func pick(pool []domain.ItemWeight, v float64) domain.ItemWeight {
	var cum float64
	for _, item := range pool {
		cum += item.Weight
		if v < cum {
			return item
		}
	}
	// float rounding can leave v == total
	return pool[len(pool)-1]
}

// Engine draws with a source seeded from crypto/rand on every call, so no
// generator state is shared between concurrent openings.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Draw(pool []domain.ItemWeight, rarities map[int]domain.Rarity, count int, declaredTotal, booster float64) ([]domain.DrawResult, error) {
	rng, err := newRand()
	if err != nil {
		return nil, err
	}
	return Draw(rng, pool, rarities, count, declaredTotal, booster)
}

func newRand() (*rand.Rand, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, errors.Wrap(err, "read random seed")
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))), nil
}
