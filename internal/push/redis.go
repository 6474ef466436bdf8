package push

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nanami9426/officerchat/internal/utils"
	"github.com/redis/go-redis/v9"
)

// RedisBroker spreads events across server instances. Every instance
// publishes to one channel and relays what it receives into its local hub.
type RedisBroker struct {
	client  *redis.Client
	channel string
}

func NewRedisBroker(client *redis.Client, channel string) *RedisBroker {
	return &RedisBroker{client: client, channel: channel}
}

func (b *RedisBroker) Publish(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.client.Publish(ctx, b.channel, data).Err()
}

// Relay forwards channel messages into target until ctx is done.
func (b *RedisBroker) Relay(ctx context.Context, target Publisher) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}
	utils.Log.Info().Str("channel", b.channel).Msg("relaying push events from redis")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				utils.Log.Warn().Err(err).Msg("skipping malformed push event")
				continue
			}
			if err := target.Publish(ctx, &event); err != nil {
				utils.Log.Warn().Err(err).Str("event", event.Name).Msg("relay publish failed")
			}
		}
	}
}
