package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"tailorpos/internal/metrics"
)

// Resubscribe delays double from resubscribeDelay up to maxResubscribeDelay.
// After maxResubscribeAttempts failures in a row the consumer gives up and Done fires.
const (
	resubscribeDelay       = time.Second
	maxResubscribeDelay    = 30 * time.Second
	maxResubscribeAttempts = 10
	notificationPrefetch   = 1
)

// Consumer consumes notification jobs from a RabbitMQ queue
type Consumer struct {
	subscribe   func() (<-chan amqp.Delivery, error)
	queueName   string
	handler     JobHandler
	log         *zap.Logger
	delay       time.Duration
	maxDelay    time.Duration
	maxAttempts int
	stopOnce    sync.Once
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// JobHandler processes one job. Returning an error requeues the delivery.
type JobHandler func(job *NotificationJob) error

// NewConsumer creates a new consumer instance
func NewConsumer(conn *Connection, queueName string, handler JobHandler, log *zap.Logger) (*Consumer, error) {
	if conn == nil {
		return nil, errors.New("connection cannot be nil")
	}

	if queueName == "" {
		return nil, errors.New("queue name cannot be empty")
	}

	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	if err := declareQueue(ch, queueName); err != nil {
		return nil, err
	}

	subscribe := func() (<-chan amqp.Delivery, error) {
		return conn.Consume(queueName, notificationPrefetch)
	}
	return newConsumer(subscribe, queueName, handler, log), nil
}

func newConsumer(subscribe func() (<-chan amqp.Delivery, error), queueName string, handler JobHandler, log *zap.Logger) *Consumer {
	return &Consumer{
		subscribe:   subscribe,
		queueName:   queueName,
		handler:     handler,
		log:         log,
		delay:       resubscribeDelay,
		maxDelay:    maxResubscribeDelay,
		maxAttempts: maxResubscribeAttempts,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// Start subscribes to the queue and consumes jobs in the background.
// A closed delivery channel is resubscribed with backoff.
func (c *Consumer) Start() error {
	msgs, err := c.subscribe()
	if err != nil {
		return err
	}

	go c.run(msgs)

	c.log.Info("Consumer started", zap.String("queue", c.queueName))
	return nil
}

// Done is closed once the consumer has stopped, either through Stop or
// because it could not resubscribe after the broker went away
func (c *Consumer) Done() <-chan struct{} {
	return c.doneChan
}

// Stop stops consuming jobs and waits for the in-flight job to finish
func (c *Consumer) Stop() error {
	c.stopOnce.Do(func() { close(c.stopChan) })
	<-c.doneChan

	c.log.Info("Consumer stopped")
	return nil
}

func (c *Consumer) run(msgs <-chan amqp.Delivery) {
	defer close(c.doneChan)

	for {
		if !c.drain(msgs) {
			return
		}

		msgs = c.resubscribe()
		if msgs == nil {
			return
		}
	}
}

// drain handles deliveries until msgs closes (true) or Stop is called (false)
func (c *Consumer) drain(msgs <-chan amqp.Delivery) bool {
	for {
		select {
		case <-c.stopChan:
			c.log.Info("Consumer stopping")
			return false
		case d, ok := <-msgs:
			if !ok {
				c.log.Warn("Delivery channel closed, resubscribing", zap.String("queue", c.queueName))
				return true
			}

			if err := c.processDelivery(d); err != nil {
				c.log.Error("Error processing job", zap.Error(err))
				d.Nack(false, true)
			} else {
				d.Ack(false)
			}
		}
	}
}

// resubscribe returns nil when stopped or out of attempts
func (c *Consumer) resubscribe() <-chan amqp.Delivery {
	delay := c.delay
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		select {
		case <-c.stopChan:
			c.log.Info("Consumer stopping")
			return nil
		case <-time.After(delay):
		}

		msgs, err := c.subscribe()
		if err == nil {
			metrics.ConsumerResubscribes.Inc()
			c.log.Info("Consumer resubscribed", zap.String("queue", c.queueName), zap.Int("attempt", attempt))
			return msgs
		}

		c.log.Error("Failed to resubscribe",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
		)

		delay *= 2
		if delay > c.maxDelay {
			delay = c.maxDelay
		}
	}

	c.log.Error("Giving up on the delivery channel", zap.String("queue", c.queueName), zap.Int("attempts", c.maxAttempts))
	return nil
}

// processDelivery decodes a delivery and hands it to the handler.
// Undecodable bodies are acknowledged and dropped since a retry cannot fix them.
func (c *Consumer) processDelivery(d amqp.Delivery) error {
	job, err := DecodeJob(d.Body)
	if err != nil {
		c.log.Error("Dropping malformed job", zap.Error(err), zap.ByteString("body", d.Body))
		return nil
	}

	if err := c.handler(job); err != nil {
		return fmt.Errorf("handler failed: %w", err)
	}

	return nil
}

// DecodeJob parses a job body
func DecodeJob(body []byte) (*NotificationJob, error) {
	var job NotificationJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification job: %w", err)
	}
	if job.OrderID <= 0 {
		return nil, fmt.Errorf("notification job has no order id")
	}
	return &job, nil
}
