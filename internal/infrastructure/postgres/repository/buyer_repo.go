package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/mappers"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

type DefaultBuyerRepository struct {
	DB *gorm.DB
}

func NewDefaultBuyerRepository(db *gorm.DB) *DefaultBuyerRepository {
	return &DefaultBuyerRepository{DB: db}
}

func (r *DefaultBuyerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	var buyer models.BuyerModel
	err := r.DB.WithContext(ctx).First(&buyer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainBuyer(&buyer), nil
}

func (r *DefaultBuyerRepository) GetByEmail(ctx context.Context, email string) (*domain.Buyer, error) {
	var buyer models.BuyerModel
	err := r.DB.WithContext(ctx).First(&buyer, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainBuyer(&buyer), nil
}

func (r *DefaultBuyerRepository) Create(ctx context.Context, buyer *domain.Buyer) error {
	model := mappers.ToGORMBuyer(buyer)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	buyer.ID = model.ID
	buyer.CreatedAt = model.CreatedAt
	return nil
}
