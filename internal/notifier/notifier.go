// Package notifier dispatches the best-effort side effects of a notable pull.
// Nothing here ever reports back to the pack opening that triggered it.
package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/packmarket/internal/domain"
	"github.com/GlebRadaev/packmarket/internal/metrics"
)

//go:generate mockgen -source=notifier.go -destination=mock_notifier.go -package=notifier

const (
	actionChat     = "chat"
	actionRealtime = "realtime"
)

type ChatBroadcaster interface {
	Broadcast(ctx context.Context, userID, itemName string) error
}

type RealtimeEmitter interface {
	Emit(ctx context.Context, event domain.InsanePullEvent) error
}

type Notifier struct {
	pool    WorkerPoolI
	chat    ChatBroadcaster
	emitter RealtimeEmitter
	timeout time.Duration
	metrics *metrics.Metrics
}

func New(pool WorkerPoolI, chat ChatBroadcaster, emitter RealtimeEmitter, timeout time.Duration, m *metrics.Metrics) *Notifier {
	return &Notifier{
		pool:    pool,
		chat:    chat,
		emitter: emitter,
		timeout: timeout,
		metrics: m,
	}
}

// NotifyRarePull queues the broadcast and returns at once. When the queue is
// full or closed the notification is dropped and the pool error is returned.
func (n *Notifier) NotifyRarePull(ctx context.Context, userID string, item domain.ItemWeight) error {
	if item.VideoID == nil {
		return nil
	}
	// The task outlives the request that queued it.
	base := context.WithoutCancel(ctx)

	err := n.pool.AddTask(func() error {
		return n.dispatch(base, userID, item)
	})
	if err != nil {
		n.metrics.NotifyDropped.Inc()
		zap.L().Warn("Rare pull notification dropped",
			zap.String("userID", userID), zap.Int("itemID", item.ItemID), zap.Error(err))
		return err
	}
	return nil
}

func (n *Notifier) dispatch(ctx context.Context, userID string, item domain.ItemWeight) error {
	// Plain Group: one failing action must not cancel the other.
	var g errgroup.Group

	g.Go(func() error {
		return n.run(ctx, actionChat, func(ctx context.Context) error {
			return n.chat.Broadcast(ctx, userID, item.Name)
		})
	})
	g.Go(func() error {
		return n.run(ctx, actionRealtime, func(ctx context.Context) error {
			return n.emitter.Emit(ctx, domain.InsanePullEvent{UserID: userID, VideoID: *item.VideoID})
		})
	})

	return g.Wait()
}

func (n *Notifier) run(ctx context.Context, action string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err := fn(ctx)
	n.metrics.ObserveNotify(action, err)
	if err != nil {
		zap.L().Error("Rare pull side effect failed", zap.String("action", action), zap.Error(err))
	}
	return err
}

func (n *Notifier) Close() {
	n.pool.Close()
}
