// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route template, method and status code
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tailorpos",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route, method and status code.",
	}, []string{"route", "method", "code"})

	// HTTPDuration observes request latency by route template and method
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tailorpos",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// NotificationsProcessed counts worker outcomes by service.Outcome* label
	NotificationsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tailorpos",
		Name:      "notifications_processed_total",
		Help:      "Pickup notification jobs processed by the worker, by outcome.",
	}, []string{"outcome"})

	// QueueReconnects counts RabbitMQ redials after the connection or channel closed
	QueueReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tailorpos",
		Name:      "queue_reconnects_total",
		Help:      "RabbitMQ reconnects after a closed connection or channel.",
	})

	// ConsumerResubscribes counts how often the worker reopened its delivery stream
	ConsumerResubscribes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tailorpos",
		Name:      "consumer_resubscribes_total",
		Help:      "Times the notification consumer resubscribed after its delivery channel closed.",
	})
)
