package queue

import (
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"tailorpos/internal/models"
)

// DefaultNotificationQueue is the queue order notifications are published to
const DefaultNotificationQueue = "order_notifications"

// Publisher publishes notification jobs to RabbitMQ
type Publisher struct {
	conn      *Connection
	queueName string
}

// NotificationJob asks the worker to tell a customer about their order
type NotificationJob struct {
	OrderID    int64              `json:"order_id"`
	CustomerID int64              `json:"customer_id"`
	Status     models.OrderStatus `json:"status"`
	Attempt    int                `json:"attempt"`
}

// NewPublisher creates a new publisher instance
func NewPublisher(conn *Connection, queueName string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("connection cannot be nil")
	}

	if queueName == "" {
		return nil, errors.New("queue name cannot be empty")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	if err := declareQueue(ch, queueName); err != nil {
		return nil, err
	}

	return &Publisher{
		conn:      conn,
		queueName: queueName,
	}, nil
}

// PublishNotification publishes a notification job to the queue
func (p *Publisher) PublishNotification(job *NotificationJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal notification job: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	err = ch.Publish(
		"",          // exchange (default)
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Close closes the publisher (no-op, connection managed externally)
func (p *Publisher) Close() error {
	return nil
}

// declareQueue declares a durable, non-auto-delete, non-exclusive queue
func declareQueue(ch *amqp.Channel, queueName string) error {
	_, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	return nil
}
