// Package session keeps per-browser-session booking state on the server.
//
// A session is identified by an opaque id carried in a signed cookie; values
// are stored under string keys and live until the browser session ends or the
// server-side idle TTL passes, whichever comes first.
package session

import (
	"context"
	"errors"
)

// Store is the raw key/value contract. Values are opaque bytes; callers
// decide the encoding.
type Store interface {
	// Get returns the value under key, or ok=false if it was never set.
	Get(ctx context.Context, sid, key string) (value []byte, ok bool, err error)
	// Set overwrites the value under key.
	Set(ctx context.Context, sid, key string, value []byte) error
	// Delete drops every key of the session.
	Delete(ctx context.Context, sid string) error
}

var ErrEmptySessionID = errors.New("session: empty session id")
