package notifier

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/GlebRadaev/packmarket/internal/domain"
)

// EventInsanePull names the realtime event for a notable pull. It is the
// Redis channel and the Kafka event header.
const EventInsanePull = "market:insane-pull"

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type RedisEmitter struct {
	client publisher
}

func NewRedisEmitter(client *redis.Client) *RedisEmitter {
	return &RedisEmitter{client: client}
}

func (e *RedisEmitter) Emit(ctx context.Context, event domain.InsanePullEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to encode event")
	}
	if err := e.client.Publish(ctx, EventInsanePull, payload).Err(); err != nil {
		return errors.Wrap(err, "redis publish failed")
	}
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaEmitter struct {
	writer messageWriter
}

func NewKafkaEmitter(brokers []string, topic string) *KafkaEmitter {
	return &KafkaEmitter{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}}
}

func (e *KafkaEmitter) Emit(ctx context.Context, event domain.InsanePullEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to encode event")
	}
	msg := kafka.Message{
		Key:     []byte(event.UserID),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event", Value: []byte(EventInsanePull)}},
	}
	if err := e.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "kafka write failed")
	}
	return nil
}

func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}
