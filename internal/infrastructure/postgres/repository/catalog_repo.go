package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/mappers"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

type DefaultCatalogRepository struct {
	DB *gorm.DB
}

func NewDefaultCatalogRepository(db *gorm.DB) *DefaultCatalogRepository {
	return &DefaultCatalogRepository{DB: db}
}

func (r *DefaultCatalogRepository) GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, error) {
	var product models.ProductModel
	err := r.DB.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("size ASC") }).
		Where("id = ? AND store_id = ?", productID, storeID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainProduct(&product), nil
}

func (r *DefaultCatalogRepository) GetProductBySlug(ctx context.Context, storeID uuid.UUID, productSlug string) (*domain.Product, error) {
	var product models.ProductModel
	err := r.DB.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("size ASC") }).
		Where("slug = ? AND store_id = ?", productSlug, storeID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainProduct(&product), nil
}

func (r *DefaultCatalogRepository) ListProducts(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.Product, int64, error) {
	var total int64
	query := r.DB.WithContext(ctx).Model(&models.ProductModel{}).Where("store_id = ?", storeID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	err := r.DB.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("size ASC") }).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, len(rows))
	for i := range rows {
		products[i] = mappers.ToDomainProduct(&rows[i])
	}
	return products, total, nil
}

func (r *DefaultCatalogRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if product.Slug == "" {
			s, err := uniqueProductSlug(tx, product.StoreID, product.Name)
			if err != nil {
				return err
			}
			product.Slug = s
		}
		model := mappers.ToGORMProduct(product)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		product.ID = model.ID
		product.CreatedAt = model.CreatedAt
		product.UpdatedAt = model.UpdatedAt
		for i := range model.Variants {
			product.Variants[i].ID = model.Variants[i].ID
			product.Variants[i].ProductID = model.ID
		}
		return nil
	})
}

func (r *DefaultCatalogRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := mappers.ToGORMProduct(product)
		res := tx.Model(&models.ProductModel{}).
			Where("id = ? AND store_id = ?", product.ID, product.StoreID).
			Select("*").
			Omit("id", "store_id", "created_at", "deleted_at").
			Updates(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		for i := range model.Variants {
			model.Variants[i].ProductID = product.ID
			if err := tx.Save(&model.Variants[i]).Error; err != nil {
				return err
			}
			product.Variants[i].ID = model.Variants[i].ID
		}
		return nil
	})
}

func (r *DefaultCatalogRepository) SoftDeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND store_id = ?", productID, storeID).
		Delete(&models.ProductModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultCatalogRepository) RestoreProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Unscoped().
		Model(&models.ProductModel{}).
		Where("id = ? AND store_id = ? AND deleted_at IS NOT NULL", productID, storeID).
		Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultCatalogRepository) HardDeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("id = ? AND store_id = ?", productID, storeID).
		Select(clause.Associations).
		Delete(&models.ProductModel{BaseModel: models.BaseModel{ID: productID}})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultCatalogRepository) IncrementSalesCount(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.ProductModel{}).
			Where("id = ?", productID).
			Update("sales_count", gorm.Expr("sales_count + ?", quantity)).Error
		if err != nil {
			return err
		}
		if variantID == nil {
			return nil
		}
		return tx.Model(&models.ProductVariantModel{}).
			Where("id = ? AND product_id = ?", *variantID, productID).
			Update("sales_count", gorm.Expr("sales_count + ?", quantity)).Error
	})
}
