package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/packmarket/internal/domain"
)

const (
	PacksKey          = "catalog:packs"
	RaritiesKey       = "catalog:rarities"
	InvalidateChannel = "catalog:invalidate"
)

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

type subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// RedisSource reads catalog hashes written by the catalog editor: one field
// per id holding the JSON definition.
type RedisSource struct {
	reader     hashReader
	subscriber subscriber
}

func NewRedisSource(client *redis.Client) *RedisSource {
	return &RedisSource{
		reader:     client,
		subscriber: client,
	}
}

func (s *RedisSource) LoadPacks(ctx context.Context) ([]domain.Pack, error) {
	return loadHash[domain.Pack](ctx, s.reader, PacksKey)
}

func (s *RedisSource) LoadRarities(ctx context.Context) ([]domain.Rarity, error) {
	return loadHash[domain.Rarity](ctx, s.reader, RaritiesKey)
}

func (s *RedisSource) Invalidations(ctx context.Context) <-chan struct{} {
	if s.subscriber == nil {
		return nil
	}
	pubsub := s.subscriber.Subscribe(ctx, InvalidateChannel)
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				// coalesce bursts into one pending signal
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}

func loadHash[T any](ctx context.Context, reader hashReader, key string) ([]T, error) {
	fields, err := reader.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}

	values := make([]T, 0, len(fields))
	for field, raw := range fields {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			zap.L().Error("malformed catalog entry", zap.String("key", key), zap.String("field", field), zap.Error(err))
			return nil, fmt.Errorf("unmarshal %s/%s: %w", key, field, err)
		}
		values = append(values, v)
	}
	return values, nil
}
