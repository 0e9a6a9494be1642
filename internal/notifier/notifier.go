// Package notifier decouples "a write happened" from "who needs to know".
// Every publish carries the restaurant's full order list, so a subscriber
// that misses N publishes still converges on the next one.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tableside/internal/connections/rabbitmq"
	"tableside/internal/domain"
)

type Notifier interface {
	PublishSnapshot(ctx context.Context, restaurantID string, orders []domain.Order) error
}

type amqpNotifier struct {
	client *rabbitmq.Client
}

func NewAMQP(client *rabbitmq.Client) Notifier {
	return &amqpNotifier{client: client}
}

func (n *amqpNotifier) PublishSnapshot(ctx context.Context, restaurantID string, orders []domain.Order) error {
	msg := domain.SnapshotMessage{
		RestaurantID: restaurantID,
		Orders:       orders,
		PublishedAt:  time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := n.client.Publish(ctx, rabbitmq.SnapshotExchange, rabbitmq.SnapshotKey(restaurantID), body); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}
