package ports

import (
	"context"

	"rosca-bridge/internal/core/domain"
)

// EventPublisher forwards derived application events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppEvent) error
}
