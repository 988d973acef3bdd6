package sqlite

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nbcoach/nbcoach/internal/domain"
	"github.com/nbcoach/nbcoach/internal/repository"

	"gorm.io/gorm"
)

type exchangeRepo struct {
	db *gorm.DB
}

// NewExchangeRepository returns a gorm-backed ExchangeRepository.
func NewExchangeRepository(db *gorm.DB) repository.ExchangeRepository {
	return &exchangeRepo{db: db}
}

func (r *exchangeRepo) Create(ctx context.Context, exchange *domain.Exchange) error {
	return r.db.WithContext(ctx).Create(exchange).Error
}

func (r *exchangeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	var exchange domain.Exchange
	err := r.db.WithContext(ctx).First(&exchange, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NoExchangeError{}
	}
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}

func (r *exchangeRepo) List(ctx context.Context, limit int) ([]*domain.Exchange, error) {
	var exchanges []*domain.Exchange
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&exchanges).Error; err != nil {
		return nil, err
	}
	return exchanges, nil
}

func (r *exchangeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Exchange{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NoExchangeError{}
	}
	return nil
}
