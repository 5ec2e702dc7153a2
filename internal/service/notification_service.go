package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tailorpos/internal/metrics"
	"tailorpos/internal/queue"
	"tailorpos/internal/repository"
)

// Notification outcomes recorded by the worker
const (
	OutcomeSent    = "sent"
	OutcomeRetried = "retried"
	OutcomeDropped = "dropped"
	OutcomeGivenUp = "given_up"
)

// MaxNotificationAttempts is how many times a pickup notification is tried
const MaxNotificationAttempts = 3

// Sender delivers a rendered message to a phone
type Sender interface {
	SendSMS(phone string, content string) *SendResult
}

// NotificationService turns notification jobs into sent messages
type NotificationService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	settings  repository.SettingsRepository
	templates *TemplateService
	template  string
	sender    Sender
	publisher NotificationPublisher
	log       *zap.Logger
}

// NewNotificationService creates a new notification service.
// template is validated up front so a bad configuration fails at startup.
func NewNotificationService(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	settings repository.SettingsRepository,
	templates *TemplateService,
	template string,
	sender Sender,
	publisher NotificationPublisher,
	log *zap.Logger,
) (*NotificationService, error) {
	if err := templates.ValidateTemplate(template); err != nil {
		return nil, fmt.Errorf("invalid notification template: %w", err)
	}

	return &NotificationService{
		orders:    orders,
		customers: customers,
		settings:  settings,
		templates: templates,
		template:  template,
		sender:    sender,
		publisher: publisher,
		log:       log,
	}, nil
}

// Process handles one job. A failed send is republished with the next attempt number
// until MaxNotificationAttempts is reached. Jobs that can never succeed are dropped.
// A returned error means the job should be redelivered as is.
func (s *NotificationService) Process(ctx context.Context, job *queue.NotificationJob) error {
	log := s.log.With(zap.Int64("order_id", job.OrderID), zap.Int("attempt", job.Attempt))

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return s.loadFailed(log, err)
	}
	index := findOrder(orders, job.OrderID)
	if index < 0 {
		log.Warn("Dropping notification for unknown order")
		return dropped()
	}
	order := orders[index]

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return s.loadFailed(log, err)
	}
	customer, ok := indexCustomers(customers)[order.CustomerID]
	if !ok {
		log.Warn("Dropping notification for unknown customer", zap.Int64("customer_id", order.CustomerID))
		return dropped()
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return s.loadFailed(log, err)
	}

	content, err := s.templates.Render(s.template, &TemplateData{Customer: customer, Order: order, Settings: settings})
	if err != nil {
		log.Error("Dropping notification that cannot be rendered", zap.Error(err))
		return dropped()
	}

	result := s.sender.SendSMS(customer.Phone, content)
	if result.Success {
		log.Info("Notification sent",
			zap.String("phone", customer.Phone),
			zap.Duration("latency", result.Latency),
		)
		metrics.NotificationsProcessed.WithLabelValues(OutcomeSent).Inc()
		return nil
	}

	if job.Attempt >= MaxNotificationAttempts {
		log.Error("Notification failed, giving up", zap.Error(result.Error))
		metrics.NotificationsProcessed.WithLabelValues(OutcomeGivenUp).Inc()
		return nil
	}

	log.Warn("Notification failed, retrying", zap.Error(result.Error))

	retry := *job
	retry.Attempt++
	if err := s.publisher.PublishNotification(&retry); err != nil {
		return fmt.Errorf("failed to republish notification: %w", err)
	}

	metrics.NotificationsProcessed.WithLabelValues(OutcomeRetried).Inc()
	return nil
}

// loadFailed drops jobs whose data is corrupt and asks for redelivery on other storage errors
func (s *NotificationService) loadFailed(log *zap.Logger, err error) error {
	var corrupt *repository.CorruptDataError
	if errors.As(err, &corrupt) {
		log.Error("Dropping notification, stored data is corrupt", zap.Error(err))
		return dropped()
	}
	return err
}

func dropped() error {
	metrics.NotificationsProcessed.WithLabelValues(OutcomeDropped).Inc()
	return nil
}
