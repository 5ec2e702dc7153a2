package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tailorpos/internal/store"
)

// CurrentVersion is the envelope version written by Save.
// Version 0 is the unversioned bare JSON written by the browser version.
const CurrentVersion = 1

// CorruptDataError is returned when a stored value cannot be decoded.
// Loading never falls back to an empty collection, since the next save would erase the data.
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("stored data under %s is corrupted: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

type envelope struct {
	Version *int            `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// document is one stored value after the envelope has been removed
type document struct {
	Version int
	Data    json.RawMessage
}

// readDocument fetches key and strips the envelope. found is false when the key is absent
// or holds a bare null.
func readDocument(ctx context.Context, s store.Store, key string) (doc document, found bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return document{}, false, nil
	}
	if err != nil {
		return document{}, false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	return parseDocument(key, raw)
}

func parseDocument(key string, raw []byte) (document, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return document{}, false, &CorruptDataError{Key: key, Err: errors.New("empty value")}
	}
	if bytes.Equal(raw, []byte("null")) {
		return document{}, false, nil
	}

	if raw[0] == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Version != nil {
			if *env.Version < 1 || *env.Version > CurrentVersion {
				return document{}, false, &CorruptDataError{Key: key, Err: fmt.Errorf("unsupported version %d", *env.Version)}
			}
			if len(env.Data) == 0 {
				return document{}, false, &CorruptDataError{Key: key, Err: errors.New("envelope has no data")}
			}
			return document{Version: *env.Version, Data: env.Data}, true, nil
		}
	}

	return document{Version: 0, Data: raw}, true, nil
}

// writeDocument stores data under key in a current-version envelope
func writeDocument(ctx context.Context, s store.Store, key string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	version := CurrentVersion
	value, err := json.Marshal(envelope{Version: &version, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := s.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return nil
}
