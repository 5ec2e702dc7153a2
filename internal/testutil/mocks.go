package testutil

import (
	"context"
	"sync"

	"tailorpos/internal/queue"
	"tailorpos/internal/store"
)

// MockStore mocks store.Store. Without a func set it behaves like an in-memory store.
type MockStore struct {
	GetFunc  func(ctx context.Context, key string) ([]byte, error)
	SetFunc  func(ctx context.Context, key string, value []byte) error
	PingFunc func(ctx context.Context) error

	Calls map[string]int // Track method calls

	mu     sync.Mutex
	data   map[string][]byte
	writes map[string]int
}

func NewMockStore() *MockStore {
	return &MockStore{
		Calls:  make(map[string]int),
		data:   make(map[string][]byte),
		writes: make(map[string]int),
	}
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	m.Calls["Get"]++
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return m.Raw(key)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.Calls["Set"]++
	m.writes[key]++
	m.mu.Unlock()
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.Put(key, value)
	return nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	m.Calls["Ping"]++
	m.mu.Unlock()
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

// Put writes a raw value, bypassing Calls
func (m *MockStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Raw reads a raw value, bypassing Calls
func (m *MockStore) Raw(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// SetCalls returns how many times Set was called
func (m *MockStore) SetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls["Set"]
}

// WritesTo returns how many times Set was called for key
func (m *MockStore) WritesTo(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[key]
}

// MockPublisher mocks the notification publisher and records published jobs
type MockPublisher struct {
	PublishNotificationFunc func(job *queue.NotificationJob) error

	mu        sync.Mutex
	Published []*queue.NotificationJob
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishNotification(job *queue.NotificationJob) error {
	m.mu.Lock()
	copied := *job
	m.Published = append(m.Published, &copied)
	m.mu.Unlock()

	if m.PublishNotificationFunc != nil {
		return m.PublishNotificationFunc(job)
	}
	return nil
}

// Jobs returns the published jobs
func (m *MockPublisher) Jobs() []*queue.NotificationJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*queue.NotificationJob(nil), m.Published...)
}
