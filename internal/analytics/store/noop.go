package store

import (
	"context"

	"github.com/serroba/sharelink-go/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created event received",
		zap.String("code", event.Code),
		zap.String("fileId", event.FileID),
		zap.Bool("passwordProtected", event.PasswordProtected),
		zap.Time("expiresAt", event.ExpiresAt),
	)

	return nil
}

func (n *Noop) SaveLinkAccessed(_ context.Context, event *analytics.LinkAccessedEvent) error {
	n.logger.Info("link accessed event received",
		zap.String("code", event.Code),
		zap.Bool("newVisitor", event.NewVisitor),
		zap.Time("accessedAt", event.AccessedAt),
	)

	return nil
}
