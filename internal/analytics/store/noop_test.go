package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/sharelink-go/internal/analytics"
	"github.com/serroba/sharelink-go/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewNoop(t *testing.T) {
	logger := zap.NewNop()
	noop := store.NewNoop(logger)

	assert.NotNil(t, noop)
}

func TestNoop_SaveLinkCreated(t *testing.T) {
	logger := zap.NewNop()
	noop := store.NewNoop(logger)

	event := &analytics.LinkCreatedEvent{
		Code:              "aB3xK9mQ",
		OwnerID:           "user-1",
		FileID:            "file-1",
		FileKind:          "library",
		PasswordProtected: true,
		CreatedAt:         time.Now(),
		ExpiresAt:         time.Now().Add(time.Hour),
	}

	err := noop.SaveLinkCreated(context.Background(), event)

	require.NoError(t, err)
}

func TestNoop_SaveLinkAccessed(t *testing.T) {
	logger := zap.NewNop()
	noop := store.NewNoop(logger)

	event := &analytics.LinkAccessedEvent{
		Code:        "aB3xK9mQ",
		Fingerprint: "1f4c6a0d",
		NewVisitor:  true,
		AccessedAt:  time.Now(),
	}

	err := noop.SaveLinkAccessed(context.Background(), event)

	require.NoError(t, err)
}
