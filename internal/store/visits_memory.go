package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/sharelink-go/internal/sharelink"
)

// MemoryVisits is an in-memory implementation of sharelink.VisitRegistry
// with the same dedup-window semantics as RedisVisits.
type MemoryVisits struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
	now    func() time.Time
}

// NewMemoryVisits creates an in-memory visit registry with the given
// dedup window.
func NewMemoryVisits(window time.Duration) *MemoryVisits {
	return &MemoryVisits{
		seen:   make(map[string]time.Time),
		window: window,
		now:    time.Now,
	}
}

// WithClock replaces the registry's clock. Test hook.
func (m *MemoryVisits) WithClock(now func() time.Time) *MemoryVisits {
	m.now = now

	return m
}

func (m *MemoryVisits) Register(_ context.Context, code sharelink.Code, fingerprint string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := string(code) + ":" + fingerprint
	now := m.now()

	if seenAt, ok := m.seen[key]; ok && now.Sub(seenAt) < m.window {
		return false, nil
	}

	m.seen[key] = now

	return true, nil
}
