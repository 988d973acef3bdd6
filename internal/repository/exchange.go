package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nbcoach/nbcoach/internal/domain"
)

// ExchangeRepository stores tutoring exchanges.
type ExchangeRepository interface {
	Create(ctx context.Context, exchange *domain.Exchange) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	List(ctx context.Context, limit int) ([]*domain.Exchange, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
