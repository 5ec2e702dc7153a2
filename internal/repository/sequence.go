package repository

import (
	"context"
	"encoding/json"

	"tailorpos/internal/store"
)

// Sequence is a persisted counter. Callers serialize access to it.
type Sequence struct {
	store store.Store
	key   string
}

// NewCustomerSequence creates the sequence customer ids are drawn from
func NewCustomerSequence(s store.Store) *Sequence {
	return &Sequence{store: s, key: CustomerSeqKey}
}

// Current returns the last value handed out, or 0
func (s *Sequence) Current(ctx context.Context) (int64, error) {
	doc, found, err := readDocument(ctx, s.store, s.key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	var value int64
	if err := json.Unmarshal(doc.Data, &value); err != nil {
		return 0, &CorruptDataError{Key: s.key, Err: err}
	}
	return value, nil
}

// Next returns a value greater than both the last one handed out and floor, and persists it.
// Passing the largest existing id as floor keeps the sequence ahead of imported data.
func (s *Sequence) Next(ctx context.Context, floor int64) (int64, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return 0, err
	}

	if floor > current {
		current = floor
	}
	next := current + 1

	if err := writeDocument(ctx, s.store, s.key, next); err != nil {
		return 0, err
	}
	return next, nil
}

// Advance raises the stored value to at least floor without handing out an id
func (s *Sequence) Advance(ctx context.Context, floor int64) error {
	current, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if floor <= current {
		return nil
	}
	return writeDocument(ctx, s.store, s.key, floor)
}
