package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// channelPrefix namespaces the per-user pub/sub channels. The session
// gateway subscribes to "notify:user:<uuid>" for each connected user.
const channelPrefix = "notify:user:"

// RedisNotifier publishes events to per-user Redis channels. It replaces the
// in-process userID->connection map the delivery side used to need: any
// gateway holding the user's live connection subscribes to that user's
// channel and forwards whatever arrives.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier on top of an established Redis client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

var _ Notifier = (*RedisNotifier)(nil)

// UserChannel returns the pub/sub channel name for a user.
func UserChannel(userID uuid.UUID) string {
	return channelPrefix + userID.String()
}

func (n *RedisNotifier) NotifyHired(ctx context.Context, freelancerID uuid.UUID, event HiredEvent) error {
	return n.publish(ctx, freelancerID, EventHired, event)
}

func (n *RedisNotifier) NotifyNewBid(ctx context.Context, ownerID uuid.UUID, event NewBidEvent) error {
	return n.publish(ctx, ownerID, EventNewBid, event)
}

func (n *RedisNotifier) publish(ctx context.Context, userID uuid.UUID, eventType string, data interface{}) error {
	payload, err := json.Marshal(Envelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	if err := n.client.Publish(ctx, UserChannel(userID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event for user %s: %w", eventType, userID, err)
	}
	return nil
}
