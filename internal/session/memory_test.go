package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(time.Hour)

	_, ok, err := m.Get(ctx, "s1", "from")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "s1", "from", []byte("Pune")))
	require.NoError(t, m.Set(ctx, "s1", "from", []byte("Delhi")))

	v, ok, err := m.Get(ctx, "s1", "from")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Delhi", string(v))

	_, ok, _ = m.Get(ctx, "s2", "from")
	assert.False(t, ok, "sessions must not see each other's keys")
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "s", "k", in))
	in[0] = 'x'

	v, _, _ := m.Get(ctx, "s", "k")
	assert.Equal(t, "abc", string(v))
	v[1] = 'y'
	again, _, _ := m.Get(ctx, "s", "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStoreIdleExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	m := NewMemoryStore(10 * time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "old", "k", []byte("v")))
	require.NoError(t, m.Set(ctx, "busy", "k", []byte("v")))

	now = now.Add(8 * time.Minute)
	_, ok, _ := m.Get(ctx, "busy", "k")
	require.True(t, ok)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	_, ok, _ = m.Get(ctx, "old", "k")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "busy", "k")
	assert.True(t, ok)
}

func TestMemoryStoreDeleteAndEmptyID(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(time.Hour)

	require.NoError(t, m.Set(ctx, "s", "k", []byte("v")))
	require.NoError(t, m.Delete(ctx, "s"))
	_, ok, _ := m.Get(ctx, "s", "k")
	assert.False(t, ok)

	assert.ErrorIs(t, m.Set(ctx, "", "k", nil), ErrEmptySessionID)
	_, _, err := m.Get(ctx, "", "k")
	assert.ErrorIs(t, err, ErrEmptySessionID)
}

func TestMemoryStoreJanitorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewMemoryStore(time.Millisecond)
	done := make(chan struct{})
	go func() {
		m.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
