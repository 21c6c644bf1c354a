package session

import (
	"context"
	"sync"
	"time"

	"hoponhub/internal/utils"
)

type memoryEntry struct {
	values  map[string][]byte
	touched time.Time
}

// MemoryStore keeps sessions in process memory. Sessions idle for longer
// than the TTL are treated as absent and removed by Sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*memoryEntry{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) expired(e *memoryEntry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.touched) > m.ttl
}

func (m *MemoryStore) Get(_ context.Context, sid, key string) ([]byte, bool, error) {
	if sid == "" {
		return nil, false, ErrEmptySessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sid]
	if !ok {
		return nil, false, nil
	}
	now := m.now()
	if m.expired(e, now) {
		delete(m.sessions, sid)
		return nil, false, nil
	}
	e.touched = now
	v, ok := e.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(_ context.Context, sid, key string, value []byte) error {
	if sid == "" {
		return ErrEmptySessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.sessions[sid]
	if !ok || m.expired(e, now) {
		e = &memoryEntry{values: map[string][]byte{}}
		m.sessions[sid] = e
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	e.values[key] = stored
	e.touched = now
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

// Sweep removes expired sessions and reports how many were dropped.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for sid, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, sid)
			n++
		}
	}
	return n
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (m *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				utils.Logger("session").Debug().Int("expired", n).Msg("swept idle sessions")
			}
		}
	}
}
