package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// SenderService simulates an SMS gateway
type SenderService struct {
	successRate     float64 // 0.0 to 1.0 (e.g., 0.95 = 95% success)
	simulateLatency bool

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSenderService creates a new sender service
// successRate: probability of successful send (0.0 to 1.0)
func NewSenderService(successRate float64, simulateLatency bool) *SenderService {
	return &SenderService{
		successRate:     clampRate(successRate),
		simulateLatency: simulateLatency,
		rand:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SendResult represents the result of a send attempt
type SendResult struct {
	Success bool
	Error   error
	Latency time.Duration
}

// SendSMS simulates sending an SMS message
func (s *SenderService) SendSMS(phone string, content string) *SendResult {
	start := time.Now()

	s.mu.Lock()
	latency := time.Duration(50+s.rand.Intn(150)) * time.Millisecond
	success := s.rand.Float64() < s.successRate
	failure := simulatedFailures[s.rand.Intn(len(simulatedFailures))]
	s.mu.Unlock()

	if s.simulateLatency {
		time.Sleep(latency)
	}

	result := &SendResult{
		Success: success,
		Latency: time.Since(start),
	}

	if !success {
		result.Error = fmt.Errorf("failed to send SMS to %s: %s", phone, failure)
	}

	return result
}

var simulatedFailures = []string{
	"network timeout",
	"invalid phone number",
	"rate limit exceeded",
	"service temporarily unavailable",
	"insufficient balance",
}

// GetSuccessRate returns the configured success rate
func (s *SenderService) GetSuccessRate() float64 {
	return s.successRate
}

func clampRate(rate float64) float64 {
	if rate < 0.0 {
		return 0.0
	}
	if rate > 1.0 {
		return 1.0
	}
	return rate
}
