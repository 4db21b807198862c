package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/sharelink-go/internal/sharelink"
)

// Memory is an in-memory implementation of sharelink.Repository, used in
// tests and local development. It mirrors the Postgres semantics: unique
// insert on short code, atomic counter updates under the lock.
type Memory struct {
	mu      sync.RWMutex
	byCode  map[sharelink.Code]*sharelink.ShareLink
	byID    map[string]*sharelink.ShareLink
	byOwner map[string][]string
}

// NewMemory creates a new in-memory share link store.
func NewMemory() *Memory {
	return &Memory{
		byCode:  make(map[sharelink.Code]*sharelink.ShareLink),
		byID:    make(map[string]*sharelink.ShareLink),
		byOwner: make(map[string][]string),
	}
}

func (m *Memory) Insert(_ context.Context, link *sharelink.ShareLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byCode[link.Code]; exists {
		return sharelink.ErrCodeTaken
	}

	stored := *link
	m.byCode[stored.Code] = &stored
	m.byID[stored.ID] = &stored
	m.byOwner[stored.OwnerID] = append(m.byOwner[stored.OwnerID], stored.ID)

	return nil
}

func (m *Memory) GetByCode(_ context.Context, code sharelink.Code) (*sharelink.ShareLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.byCode[code]
	if !ok {
		return nil, sharelink.ErrNotFound
	}

	copied := *link

	return &copied, nil
}

func (m *Memory) ListByOwner(_ context.Context, ownerID string) ([]sharelink.ShareLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byOwner[ownerID]
	links := make([]sharelink.ShareLink, 0, len(ids))

	for _, id := range ids {
		links = append(links, *m.byID[id])
	}

	return links, nil
}

func (m *Memory) Revoke(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if link, ok := m.byID[id]; ok {
		link.Revoked = true
	}

	return nil
}

func (m *Memory) RecordAccess(_ context.Context, id string, newVisitor bool, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.byID[id]
	if !ok {
		return sharelink.ErrNotFound
	}

	link.TotalClicks++

	if newVisitor {
		link.UniqueVisitors++
	}

	if link.FirstOpenedAt == nil {
		first := now
		link.FirstOpenedAt = &first
	}

	last := now
	link.LastOpenedAt = &last

	return nil
}
