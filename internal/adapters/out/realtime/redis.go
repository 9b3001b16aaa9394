// Package realtime moves push events between processes over Redis pub/sub.
// Every user has one channel, user:<id>; whichever instance holds the
// user's event stream relays what arrives there.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ ports.Pusher = &RedisPusher{}

// Channel is the pub/sub channel for userID.
func Channel(userID kernel.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

type RedisPusher struct {
	client goredis.UniversalClient
}

func NewRedisPusher(client goredis.UniversalClient) *RedisPusher {
	return &RedisPusher{client: client}
}

// Push publishes event to the user's channel. Nobody listening is not an error.
func (p *RedisPusher) Push(ctx context.Context, userID kernel.UUID, event ports.PushEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal push event: %w", err)
	}
	if err = p.client.Publish(ctx, Channel(userID), data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", Channel(userID), err)
	}
	return nil
}

// Subscriber opens per-connection subscriptions for event streams.
type Subscriber struct {
	client goredis.UniversalClient
	logger *zap.Logger
}

func NewSubscriber(client goredis.UniversalClient, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		client: client,
		logger: logger.With(zap.String("component", "realtime_subscriber")),
	}
}

// Subscribe streams the user's events until ctx ends. The returned channel is
// closed once the subscription is torn down. Malformed payloads are dropped.
func (s *Subscriber) Subscribe(ctx context.Context, userID kernel.UUID) (<-chan ports.PushEvent, error) {
	sub := s.client.Subscribe(ctx, Channel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", Channel(userID), err)
	}

	out := make(chan ports.PushEvent)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event ports.PushEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					s.logger.Warn("dropping malformed push event",
						zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
