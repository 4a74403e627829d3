package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// AuthEventRepository appends to the authentication activity trail.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuthEventRecorder accepts events without blocking the request path.
type AuthEventRecorder interface {
	Enqueue(event domain.AuthEvent)
}

// AuthEventService persists a single dequeued event.
type AuthEventService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
