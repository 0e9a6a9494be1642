package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tableside/internal/config"
)

// SnapshotExchange carries one message per committed order write, keyed by
// restaurant. Topic type so a consumer can bind a subset of restaurants.
const SnapshotExchange = "orders.snapshots"

// SnapshotKey is the routing key for one restaurant's snapshots.
func SnapshotKey(restaurantID string) string { return "restaurant." + restaurantID }

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation // publisher confirms
	mu   sync.Mutex               // serializes Publish while waiting on acks
}

func Dial(cfg config.RabbitMQ) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopology declares the snapshot exchange. Snapshots are best-effort
// and superseded by the next publish, so nothing here is durable.
func (c *Client) DeclareTopology() error {
	return c.ch.ExchangeDeclare(SnapshotExchange, "topic", false, false, false, false, nil)
}

// DeclareSnapshotQueue declares a private queue bound to every restaurant's
// snapshot key and returns its generated name. Exclusive and auto-delete:
// a gateway that drops off takes its backlog with it.
func (c *Client) DeclareSnapshotQueue() (string, error) {
	q, err := c.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return "", err
	}
	if err := c.ch.QueueBind(q.Name, "restaurant.*", SnapshotExchange, false, nil); err != nil {
		return "", err
	}
	return q.Name, nil
}

// Publish sends one message and waits for the broker's ack or the context.
func (c *Client) Publish(ctx context.Context, exchange, key string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.PublishWithContext(
		ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return err
	}

	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume starts delivery of queue messages with auto-ack. Snapshot delivery
// is fire-and-forget; redelivering a stale snapshot has no value.
func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, true, false, false, false, nil)
}

// NotifyClose reports an unexpected connection teardown.
func (c *Client) NotifyClose() chan *amqp.Error {
	return c.conn.NotifyClose(make(chan *amqp.Error, 1))
}
