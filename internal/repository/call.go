package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/isaacphi/rendertools/internal/domain"
)

// CallRepository stores the history of dispatched tool calls.
type CallRepository interface {
	Record(ctx context.Context, call *domain.Call) error
	List(ctx context.Context, limit int) ([]*domain.Call, error)
	FindByPartialID(ctx context.Context, partialID string) (*domain.Call, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
