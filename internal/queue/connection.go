package queue

import (
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"tailorpos/internal/metrics"
)

// Connection holds the RabbitMQ connection shared by the notification publisher and
// consumer. A closed connection or channel is redialed on the next Channel or Consume call.
type Connection struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	log     *zap.Logger
	mu      sync.Mutex
}

// NewConnection dials url and opens the shared channel
func NewConnection(url string, log *zap.Logger) (*Connection, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url cannot be empty")
	}

	c := &Connection{url: url, log: log}
	if err := c.dial(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	log.Info("Connected to RabbitMQ")
	return c, nil
}

// Channel returns the shared channel, redialing first if it has closed
func (c *Connection) Channel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.openChannel()
}

// Consume subscribes to queueName with at most prefetch unacknowledged deliveries.
// The queue is declared first so a redialed broker that lost it still delivers.
// Callers resubscribe after the returned channel closes by calling Consume again.
func (c *Connection) Consume(queueName string, prefetch int) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, err := c.openChannel()
	if err != nil {
		return nil, err
	}

	if err := declareQueue(ch, queueName); err != nil {
		return nil, err
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		queueName,
		"",    // consumer tag (auto-generated)
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	return msgs, nil
}

// openChannel must be called with mu held
func (c *Connection) openChannel() (*amqp.Channel, error) {
	if c.channel != nil && c.conn != nil && !c.conn.IsClosed() && !c.channel.IsClosed() {
		return c.channel, nil
	}

	c.log.Warn("RabbitMQ channel closed, reconnecting")
	c.release()
	if err := c.dial(); err != nil {
		return nil, fmt.Errorf("failed to reconnect: %w", err)
	}

	metrics.QueueReconnects.Inc()
	c.log.Info("Reconnected to RabbitMQ")
	return c.channel, nil
}

func (c *Connection) dial() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create channel: %w", err)
	}

	c.conn = conn
	c.channel = channel
	return nil
}

// release drops a half-closed connection before redialing; close errors are expected here
func (c *Connection) release() {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// Close closes the channel and the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		c.channel = nil
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		c.conn = nil
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.log.Info("RabbitMQ connection closed")
	return nil
}

// IsConnected reports whether the connection is open. The health check uses it.
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil && !c.conn.IsClosed() && c.channel != nil
}
