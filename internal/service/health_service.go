package service

import (
	"context"
	"time"
)

// Health status constants
const (
	StatusHealthy      = "healthy"
	StatusDegraded     = "degraded"
	StatusUnhealthy    = "unhealthy"
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusDisabled     = "disabled"
)

// HealthStatus represents the overall health status of the application
type HealthStatus struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
}

// Pinger is satisfied by every store backend
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueStatus is satisfied by the RabbitMQ connection
type QueueStatus interface {
	IsConnected() bool
}

// HealthChecker handles health check operations
type HealthChecker struct {
	store   Pinger
	queue   QueueStatus
	version string
}

// NewHealthService creates a new HealthChecker instance. queue is nil when notifications are disabled.
func NewHealthService(store Pinger, queue QueueStatus, version string) *HealthChecker {
	return &HealthChecker{
		store:   store,
		queue:   queue,
		version: version,
	}
}

// checkStore verifies store connectivity with a timeout
func (h *HealthChecker) checkStore(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return StatusDisconnected
	}

	return StatusConnected
}

func (h *HealthChecker) checkQueue() string {
	if h.queue == nil {
		return StatusDisabled
	}
	if !h.queue.IsConnected() {
		return StatusDisconnected
	}
	return StatusConnected
}

// determineOverallStatus calculates the overall health status based on service statuses
func (h *HealthChecker) determineOverallStatus(services map[string]string) string {
	// the shop cannot work without its store
	if services["store"] == StatusDisconnected {
		return StatusUnhealthy
	}

	// notifications are best effort
	if services["queue"] == StatusDisconnected {
		return StatusDegraded
	}

	return StatusHealthy
}

// CheckHealth performs health checks on all dependencies and returns the overall status
func (h *HealthChecker) CheckHealth(ctx context.Context) (*HealthStatus, error) {
	services := map[string]string{
		"store": h.checkStore(ctx),
		"queue": h.checkQueue(),
	}

	return &HealthStatus{
		Status:    h.determineOverallStatus(services),
		Services:  services,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}, nil
}
