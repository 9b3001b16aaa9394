package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/chat"
	"fulfillment/internal/core/domain/model/kernel"
)

type ChatSessionRepository interface {
	Add(ctx context.Context, s *chat.Session) error
	Update(ctx context.Context, s *chat.Session) error
	Get(ctx context.Context, id kernel.UUID) (*chat.Session, error)

	// ListActiveBetween returns the active sessions joining a and b.
	ListActiveBetween(ctx context.Context, a, b kernel.UUID) ([]*chat.Session, error)
}

type MessageRepository interface {
	Add(ctx context.Context, m *chat.Message) error
}
