package realtime

import (
	"context"
	"encoding/json"
	"time"

	"tableside/internal/common/logger"
	"tableside/internal/config"
	"tableside/internal/connections/rabbitmq"
	"tableside/internal/domain"
)

const reconnectDelay = 3 * time.Second

// RunConsumer bridges the snapshot exchange into the hub. It reconnects
// with a fixed delay, indefinitely, until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg config.RabbitMQ, hub *Hub, lg *logger.Logger) {
	for {
		if err := consumeOnce(ctx, cfg, hub, lg); err != nil {
			lg.Error("consumer_stopped", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func consumeOnce(ctx context.Context, cfg config.RabbitMQ, hub *Hub, lg *logger.Logger) error {
	client, err := rabbitmq.Dial(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}
	queue, err := client.DeclareSnapshotQueue()
	if err != nil {
		return err
	}
	deliveries, err := client.Consume(queue, "realtime-gateway", 1)
	if err != nil {
		return err
	}
	lg.Info("consumer_started", "queue", queue)

	closed := client.NotifyClose()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-closed:
			return err
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var msg domain.SnapshotMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				lg.Error("snapshot_decode_failed", err)
				continue
			}
			hub.Broadcast(msg)
			lg.Debug("snapshot_relayed",
				"restaurant_id", msg.RestaurantID,
				"orders", len(msg.Orders),
				"subscribers", hub.Subscribers(msg.RestaurantID))
		}
	}
}
