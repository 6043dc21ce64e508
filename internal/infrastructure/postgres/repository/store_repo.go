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

type DefaultStoreRepository struct {
	DB *gorm.DB
}

func NewDefaultStoreRepository(db *gorm.DB) *DefaultStoreRepository {
	return &DefaultStoreRepository{DB: db}
}

func (r *DefaultStoreRepository) GetByDomain(ctx context.Context, host string) (*domain.Store, error) {
	var store models.StoreModel
	err := r.DB.WithContext(ctx).
		Preload("Settings").
		Where("domain = ? AND is_active = ?", host, true).
		First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainStore(&store), nil
}

func (r *DefaultStoreRepository) FirstActive(ctx context.Context) (*domain.Store, error) {
	var store models.StoreModel
	err := r.DB.WithContext(ctx).
		Preload("Settings").
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainStore(&store), nil
}

func (r *DefaultStoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	var store models.StoreModel
	err := r.DB.WithContext(ctx).
		Preload("Settings").
		First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainStore(&store), nil
}

func (r *DefaultStoreRepository) Create(ctx context.Context, store *domain.Store) error {
	model := mappers.ToGORMStore(store)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	store.ID = model.ID
	store.CreatedAt = model.CreatedAt
	store.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultStoreRepository) UpdateSettings(ctx context.Context, storeID uuid.UUID, settings domain.StoreSettings) error {
	model := mappers.ToGORMStoreSettings(storeID, settings)
	res := r.DB.WithContext(ctx).
		Model(&models.StoreSettingsModel{}).
		Where("store_id = ?", storeID).
		Select("*").
		Omit("store_id", "created_at").
		Updates(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.DB.WithContext(ctx).Create(&model).Error
	}
	return nil
}
