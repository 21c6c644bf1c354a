package session

import (
	"context"
	"encoding/json"
	"fmt"
)

// Session binds a session id to a Store.
type Session struct {
	ID    string
	store Store
}

func New(id string, store Store) *Session {
	return &Session{ID: id, store: store}
}

// SetString stores s verbatim.
func (s *Session) SetString(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.ID, key, []byte(value))
}

// GetString returns the raw stored text.
func (s *Session) GetString(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.store.Get(ctx, s.ID, key)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(v), true, nil
}

// SetJSON stores the JSON encoding of value.
func (s *Session) SetJSON(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.store.Set(ctx, s.ID, key, b)
}

// GetJSON decodes the value under key into dst. A stored JSON null counts as
// absent.
func (s *Session) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	v, ok, err := s.store.Get(ctx, s.ID, key)
	if err != nil || !ok {
		return false, err
	}
	if string(v) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Clear drops the whole session.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.ID)
}
