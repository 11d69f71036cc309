package marketservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/packmarket/internal/domain"
	"github.com/GlebRadaev/packmarket/internal/draw"
	"github.com/GlebRadaev/packmarket/internal/metrics"
	"github.com/GlebRadaev/packmarket/internal/pg"
)

type serialKey struct {
	itemID int
	shiny  bool
}

type memState struct {
	tokens      map[string]int64
	diamonds    map[string]int64
	packsOpened map[string]int64
	serials     map[serialKey]int64
	items       []domain.OwnedItem
}

func (s memState) clone() memState {
	c := memState{
		tokens:      make(map[string]int64, len(s.tokens)),
		diamonds:    make(map[string]int64, len(s.diamonds)),
		packsOpened: make(map[string]int64, len(s.packsOpened)),
		serials:     make(map[serialKey]int64, len(s.serials)),
		items:       append([]domain.OwnedItem(nil), s.items...),
	}
	for k, v := range s.tokens {
		c.tokens[k] = v
	}
	for k, v := range s.diamonds {
		c.diamonds[k] = v
	}
	for k, v := range s.packsOpened {
		c.packsOpened[k] = v
	}
	for k, v := range s.serials {
		c.serials[k] = v
	}
	return c
}

type inTxKey struct{}

// memStore is an in-memory transactional store. By default units of work run
// one at a time and a failed one restores the previous state. In optimistic
// mode they run concurrently on private copies and a commit that finds the
// store changed underneath it fails with a serialization error, which
// BeginSerializable retries through pg.RetrySerializable.
type memStore struct {
	mu         sync.Mutex
	state      memState
	version    int64
	nextID     atomic.Int64
	failCreate error

	optimistic bool
	maxRetries uint64
	// conflicts holds how many more serial allocations of a key fail with a
	// serialization error.
	conflicts map[serialKey]int
}

func newMemStore(tokens map[string]int64) *memStore {
	s := &memStore{state: memState{
		tokens:      tokens,
		diamonds:    map[string]int64{},
		packsOpened: map[string]int64{},
		serials:     map[serialKey]int64{},
	}}
	return s
}

func newOptimisticStore(tokens map[string]int64, maxRetries uint64) *memStore {
	s := newMemStore(tokens)
	s.optimistic = true
	s.maxRetries = maxRetries
	s.conflicts = map[serialKey]int{}
	return s
}

func serializationFailure() error {
	return &pgconn.PgError{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

func (s *memStore) run(ctx context.Context, fn pg.TransactionalFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.state.clone()
	if err := fn(context.WithValue(ctx, inTxKey{}, &s.state)); err != nil {
		s.state = saved
		return err
	}
	s.version++
	return nil
}

func (s *memStore) runOptimistic(ctx context.Context, fn pg.TransactionalFn) error {
	s.mu.Lock()
	work := s.state.clone()
	version := s.version
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, inTxKey{}, &work)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return serializationFailure()
	}
	s.state = work
	s.version++
	return nil
}

func (s *memStore) Begin(ctx context.Context, fn pg.TransactionalFn) error {
	return s.run(ctx, fn)
}

func (s *memStore) BeginSerializable(ctx context.Context, fn pg.TransactionalFn) error {
	if !s.optimistic {
		return s.run(ctx, fn)
	}
	return pg.RetrySerializable(ctx, s.maxRetries, 10*time.Microsecond, func(ctx context.Context) error {
		return s.runOptimistic(ctx, fn)
	})
}

// view returns the state the call should act on: the unit of work's copy
// inside a transaction, the shared state under the lock otherwise.
func (s *memStore) view(ctx context.Context) (*memState, func()) {
	if st, ok := ctx.Value(inTxKey{}).(*memState); ok {
		return st, func() {}
	}
	s.mu.Lock()
	return &s.state, s.mu.Unlock
}

func (s *memStore) GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	st, unlock := s.view(ctx)
	defer unlock()
	tokens, ok := st.tokens[userID]
	if !ok {
		return nil, nil
	}
	return &domain.Balance{UserID: userID, Tokens: tokens, Diamonds: st.diamonds[userID]}, nil
}

func (s *memStore) DebitTokens(ctx context.Context, userID string, amount int64) (*domain.Balance, error) {
	st, unlock := s.view(ctx)
	defer unlock()
	if st.tokens[userID] < amount {
		return nil, nil
	}
	st.tokens[userID] -= amount
	return &domain.Balance{UserID: userID, Tokens: st.tokens[userID], Diamonds: st.diamonds[userID]}, nil
}

func (s *memStore) ConvertDiamonds(ctx context.Context, userID string, diamonds, rate int64) (*domain.Balance, error) {
	st, unlock := s.view(ctx)
	defer unlock()
	if st.diamonds[userID] < diamonds {
		return nil, nil
	}
	st.diamonds[userID] -= diamonds
	st.tokens[userID] += diamonds * rate
	return &domain.Balance{UserID: userID, Tokens: st.tokens[userID], Diamonds: st.diamonds[userID]}, nil
}

func (s *memStore) IncrementPacksOpened(ctx context.Context, userID string) (int64, error) {
	st, unlock := s.view(ctx)
	defer unlock()
	st.packsOpened[userID]++
	return st.packsOpened[userID], nil
}

func (s *memStore) GetPacksOpened(ctx context.Context, userID string) (int64, error) {
	st, unlock := s.view(ctx)
	defer unlock()
	return st.packsOpened[userID], nil
}

func (s *memStore) takeConflict(key serialKey) bool {
	if !s.optimistic {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts[key] == 0 {
		return false
	}
	s.conflicts[key]--
	return true
}

func (s *memStore) NextSerial(ctx context.Context, itemID int, shiny bool) (int64, error) {
	key := serialKey{itemID: itemID, shiny: shiny}
	if s.takeConflict(key) {
		return 0, serializationFailure()
	}
	st, unlock := s.view(ctx)
	defer unlock()
	st.serials[key]++
	return st.serials[key], nil
}

func (s *memStore) CreateOwnedItem(ctx context.Context, item *domain.OwnedItem) (*domain.OwnedItem, error) {
	st, unlock := s.view(ctx)
	defer unlock()
	if s.failCreate != nil {
		return nil, s.failCreate
	}
	item.ID = s.nextID.Add(1)
	item.CreatedAt = time.Now()
	st.items = append(st.items, *item)
	return item, nil
}

func (s *memStore) snapshot() memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

type staticCatalog struct {
	snap *domain.PackSnapshot
}

func (c staticCatalog) GetPack(packID int) (*domain.PackSnapshot, error) {
	if c.snap == nil || c.snap.Pack.ID != packID {
		return nil, domain.ErrUnknownPack
	}
	return c.snap, nil
}

type countingNotifier struct {
	calls atomic.Int64
}

func (n *countingNotifier) NotifyRarePull(context.Context, string, domain.ItemWeight) error {
	n.calls.Add(1)
	return nil
}

func newStoreService(store *memStore, pack domain.Pack) (*Service, *countingNotifier) {
	notifier := &countingNotifier{}
	snap := &domain.PackSnapshot{Pack: pack, Rarities: map[int]domain.Rarity{1: {ID: 1, Name: "Common"}}}
	service := New(staticCatalog{snap: snap}, draw.NewEngine(), store, store, store, store, notifier,
		metrics.New(prometheus.NewRegistry()),
		Config{TxTimeout: 5 * time.Second, DiamondExchangeRate: 3})
	return service, notifier
}

func singleItemPack(price int64) domain.Pack {
	return domain.Pack{ID: 1, Name: "Single", Price: price, Enabled: true,
		Items: []domain.ItemWeight{{ItemID: 100, Name: "Toast", RarityID: 1, Weight: 1}}}
}

func openConcurrently(service *Service, userIDs []string) ([]*domain.OpenPackResult, []error) {
	results := make([]*domain.OpenPackResult, len(userIDs))
	errs := make([]error, len(userIDs))

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, userID := range userIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i], errs[i] = service.OpenPack(context.Background(), userID, 1)
		}()
	}
	close(start)
	wg.Wait()
	return results, errs
}

func TestOpenPack_SerialsAreUniqueUnderConcurrency(t *testing.T) {
	const openers = 32
	tokens := map[string]int64{}
	userIDs := make([]string, openers)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf("user-%d", i)
		tokens[userIDs[i]] = 100
	}
	store := newMemStore(tokens)
	service, _ := newStoreService(store, singleItemPack(100))

	results, errs := openConcurrently(service, userIDs)

	serials := make([]int64, 0, openers)
	for i := range results {
		require.NoError(t, errs[i])
		require.Len(t, results[i].Items, 1)
		serials = append(serials, results[i].Items[0].Serial)
	}
	sort.Slice(serials, func(i, j int) bool { return serials[i] < serials[j] })
	for i, serial := range serials {
		assert.Equal(t, int64(i+1), serial)
	}

	state := store.snapshot()
	assert.Len(t, state.items, openers)
	for _, userID := range userIDs {
		assert.Zero(t, state.tokens[userID])
		assert.Equal(t, int64(1), state.packsOpened[userID])
	}
}

func TestOpenPack_BalanceNeverGoesNegative(t *testing.T) {
	store := newMemStore(map[string]int64{"u1": 250})
	service, _ := newStoreService(store, singleItemPack(100))

	_, errs := openConcurrently(service, []string{"u1", "u1", "u1", "u1", "u1"})

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrBalanceChanged), err.Error())
	}
	assert.Equal(t, 2, succeeded)

	state := store.snapshot()
	assert.Equal(t, int64(50), state.tokens["u1"])
	assert.Equal(t, int64(2), state.packsOpened["u1"])
	assert.Len(t, state.items, 2)
}

func TestOpenPack_FailedPersistLeavesNoTrace(t *testing.T) {
	store := newMemStore(map[string]int64{"u1": 250})
	store.failCreate = errors.New("disk full")
	service, notifier := newStoreService(store, singleItemPack(100))
	before := store.snapshot()

	result, err := service.OpenPack(context.Background(), "u1", 1)
	assert.Error(t, err)
	assert.Nil(t, result)

	after := store.snapshot()
	assert.Equal(t, before.tokens, after.tokens)
	assert.Equal(t, before.packsOpened, after.packsOpened)
	assert.Equal(t, before.serials, after.serials)
	assert.Empty(t, after.items)
	assert.Zero(t, notifier.calls.Load())
}

func TestOpenPack_Scenarios(t *testing.T) {
	t.Run("Insufficient funds leaves balance untouched", func(t *testing.T) {
		store := newMemStore(map[string]int64{"u1": 50})
		service, _ := newStoreService(store, singleItemPack(100))

		_, err := service.OpenPack(context.Background(), "u1", 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, int64(50), store.snapshot().tokens["u1"])
	})

	t.Run("Disabled pack is not found", func(t *testing.T) {
		store := newMemStore(map[string]int64{"u1": 250})
		pack := singleItemPack(100)
		pack.Enabled = false
		service, _ := newStoreService(store, pack)

		_, err := service.OpenPack(context.Background(), "u1", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		state := store.snapshot()
		assert.Equal(t, int64(250), state.tokens["u1"])
		assert.Empty(t, state.packsOpened)
		assert.Empty(t, state.items)
	})

	t.Run("Two concurrent opens get consecutive serials", func(t *testing.T) {
		store := newMemStore(map[string]int64{"u1": 100, "u2": 100})
		service, _ := newStoreService(store, singleItemPack(100))

		results, errs := openConcurrently(service, []string{"u1", "u2"})
		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		serials := []int64{results[0].Items[0].Serial, results[1].Items[0].Serial}
		assert.ElementsMatch(t, []int64{1, 2}, serials)
	})

	t.Run("Multi-draw pack mints every draw in order", func(t *testing.T) {
		store := newMemStore(map[string]int64{"u1": 100})
		pack := singleItemPack(100)
		pack.DrawCount = 3
		service, _ := newStoreService(store, pack)

		result, err := service.OpenPack(context.Background(), "u1", 1)
		require.NoError(t, err)
		require.Len(t, result.Items, 3)
		for i, item := range result.Items {
			assert.Equal(t, int64(i+1), item.Serial)
		}
		assert.Equal(t, int64(0), result.Tokens)
		assert.Equal(t, int64(1), store.snapshot().packsOpened["u1"])
	})

	t.Run("Notable pull is handed to the notifier after commit", func(t *testing.T) {
		store := newMemStore(map[string]int64{"u1": 100})
		pack := singleItemPack(100)
		video := 3
		pack.Items[0].VideoID = &video
		service, notifier := newStoreService(store, pack)

		_, err := service.OpenPack(context.Background(), "u1", 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), notifier.calls.Load())
	})
}

func TestConvertDiamonds_Store(t *testing.T) {
	store := newMemStore(map[string]int64{"u1": 0})
	store.state.diamonds["u1"] = 10
	service, _ := newStoreService(store, singleItemPack(100))

	balance, err := service.ConvertDiamonds(context.Background(), "u1", 4)
	require.NoError(t, err)
	assert.Equal(t, &domain.Balance{UserID: "u1", Tokens: 12, Diamonds: 6}, balance)

	_, err = service.ConvertDiamonds(context.Background(), "u1", 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientDiamonds)
	assert.Equal(t, int64(6), store.snapshot().diamonds["u1"])
}

func TestOpenPack_SerialConflictIsRetried(t *testing.T) {
	store := newOptimisticStore(map[string]int64{"u1": 100}, 3)
	store.conflicts[serialKey{itemID: 100}] = 1
	service, notifier := newStoreService(store, singleItemPack(100))

	result, err := service.OpenPack(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Items[0].Serial)
	assert.Equal(t, int64(0), result.Tokens)

	state := store.snapshot()
	assert.Equal(t, int64(0), state.tokens["u1"])
	assert.Equal(t, int64(1), state.packsOpened["u1"])
	assert.Equal(t, int64(1), state.serials[serialKey{itemID: 100}])
	assert.Len(t, state.items, 1)
	assert.Zero(t, notifier.calls.Load())
}

func TestOpenPack_SerialConflictRetriesExhausted(t *testing.T) {
	store := newOptimisticStore(map[string]int64{"u1": 100}, 2)
	store.conflicts[serialKey{itemID: 100}] = 3
	service, _ := newStoreService(store, singleItemPack(100))
	before := store.snapshot()

	result, err := service.OpenPack(context.Background(), "u1", 1)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrSerialAllocationFailed)
	assert.ErrorIs(t, err, domain.ErrConflict)

	after := store.snapshot()
	assert.Equal(t, before.tokens, after.tokens)
	assert.Empty(t, after.packsOpened)
	assert.Empty(t, after.serials)
	assert.Empty(t, after.items)
}

func TestOpenPack_SerialsAreUniqueUnderOptimisticConcurrency(t *testing.T) {
	const openers = 16
	tokens := map[string]int64{}
	userIDs := make([]string, openers)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf("user-%d", i)
		tokens[userIDs[i]] = 100
	}
	// Every commit bumps the version, so each round lets at least one
	// opener through and the rest retry.
	store := newOptimisticStore(tokens, 2*openers)
	store.conflicts[serialKey{itemID: 100}] = openers / 2
	service, _ := newStoreService(store, singleItemPack(100))

	results, errs := openConcurrently(service, userIDs)

	serials := make([]int64, 0, openers)
	for i := range results {
		require.NoError(t, errs[i])
		require.Len(t, results[i].Items, 1)
		serials = append(serials, results[i].Items[0].Serial)
	}
	sort.Slice(serials, func(i, j int) bool { return serials[i] < serials[j] })
	for i, serial := range serials {
		assert.Equal(t, int64(i+1), serial)
	}

	state := store.snapshot()
	assert.Len(t, state.items, openers)
	assert.Equal(t, int64(openers), state.serials[serialKey{itemID: 100}])
	for _, userID := range userIDs {
		assert.Zero(t, state.tokens[userID])
		assert.Equal(t, int64(1), state.packsOpened[userID])
	}
}
