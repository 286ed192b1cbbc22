// Package messaging wraps the RabbitMQ connection used for notification
// delivery. Queues are durable with a dead-letter queue so undeliverable
// events are retained for inspection.
package messaging

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Client holds a RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects to RabbitMQ and opens a channel.
func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, channel: ch}, nil
}

// DeclareQueue declares a durable queue with a companion dead-letter queue.
func (c *Client) DeclareQueue(name string) error {
	dlqName := name + ".dlq"

	if _, err := c.channel.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare dead-letter queue: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqName,
	}
	if _, err := c.channel.QueueDeclare(name, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	return nil
}

// Publish sends a persistent JSON message to the named queue. The event type
// travels in the message type field so consumers can route without decoding.
func (c *Client) Publish(queue, eventType string, body []byte) error {
	err := c.channel.Publish(
		"",    // default exchange
		queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         eventType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to queue %s: %w", queue, err)
	}
	return nil
}

// QueuePublisher binds the client to a single queue so callers that only
// publish one event stream do not need to carry the queue name around.
type QueuePublisher struct {
	client *Client
	queue  string
}

// QueuePublisher returns a publisher bound to the named queue.
func (c *Client) QueuePublisher(queue string) *QueuePublisher {
	return &QueuePublisher{client: c, queue: queue}
}

// Publish sends one event to the bound queue.
func (p *QueuePublisher) Publish(eventType string, body []byte) error {
	return p.client.Publish(p.queue, eventType, body)
}

// Health reports whether the connection is still open.
func (c *Client) Health() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection closed")
	}
	return nil
}

// Close cleans up the channel and connection.
func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
