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

type DefaultCartRepository struct {
	DB *gorm.DB
}

func NewDefaultCartRepository(db *gorm.DB) *DefaultCartRepository {
	return &DefaultCartRepository{DB: db}
}

func (r *DefaultCartRepository) GetByID(ctx context.Context, storeID, cartID uuid.UUID) (*domain.Cart, error) {
	var cart models.CartModel
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND store_id = ?", cartID, storeID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainCart(&cart), nil
}

func (r *DefaultCartRepository) GetActiveByUser(ctx context.Context, storeID, userID uuid.UUID) (*domain.Cart, error) {
	var cart models.CartModel
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("store_id = ? AND user_id = ? AND is_active = ?", storeID, userID, true).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainCart(&cart), nil
}

func (r *DefaultCartRepository) GetActiveBySession(ctx context.Context, storeID uuid.UUID, sessionKey string) (*domain.Cart, error) {
	var cart models.CartModel
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("store_id = ? AND session_key = ? AND is_active = ?", storeID, sessionKey, true).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainCart(&cart), nil
}

func (r *DefaultCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	model := mappers.ToGORMCart(cart)
	err := r.DB.WithContext(ctx).Create(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateCart
	}
	if err != nil {
		return err
	}
	cart.ID = model.ID
	cart.CreatedAt = model.CreatedAt
	cart.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultCartRepository) UpsertLine(ctx context.Context, storeID, cartID uuid.UUID, line *domain.CartLine, trackStock bool) (*domain.CartLine, error) {
	var result *domain.CartLine
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The cart row lock serializes concurrent upserts on the same cart.
		var cart models.CartModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND store_id = ?", cartID, storeID).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !cart.IsActive {
			return domain.ErrCartAlreadyConverted
		}

		var existing models.CartLineModel
		err = tx.Where("cart_id = ? AND product_id = ? AND variant_id IS NOT DISTINCT FROM ?",
			cartID, line.ProductID, line.VariantID).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		found := err == nil

		quantity := line.Quantity
		if found {
			quantity += existing.Quantity
		}
		if trackStock {
			available, err := lockStock(tx, line.ProductID, line.VariantID)
			if err != nil {
				return err
			}
			if quantity > available {
				return &domain.InsufficientStockError{Available: available, Requested: quantity}
			}
		}

		if found {
			// Quantity moves, the price snapshot stays.
			err = tx.Model(&existing).Update("quantity", quantity).Error
			if err != nil {
				return err
			}
			existing.Quantity = quantity
			updated := mappers.ToDomainCartLine(&existing)
			result = &updated
			return nil
		}

		model := mappers.ToGORMCartLine(line)
		model.CartID = cartID
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		created := mappers.ToDomainCartLine(model)
		result = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *DefaultCartRepository) UpdateLineQuantity(ctx context.Context, storeID, cartID, lineID uuid.UUID, quantity int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.CartModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND store_id = ?", cartID, storeID).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !cart.IsActive {
			return domain.ErrCartAlreadyConverted
		}

		var line models.CartLineModel
		err = tx.Where("id = ? AND cart_id = ?", lineID, cartID).First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		var trackStock bool
		err = tx.Model(&models.ProductModel{}).Unscoped().
			Select("track_stock").
			Where("id = ?", line.ProductID).
			Scan(&trackStock).Error
		if err != nil {
			return err
		}
		if trackStock {
			available, err := lockStock(tx, line.ProductID, line.VariantID)
			if err != nil {
				return err
			}
			if quantity > available {
				return &domain.InsufficientStockError{Available: available, Requested: quantity}
			}
		}
		return tx.Model(&line).Update("quantity", quantity).Error
	})
}

func (r *DefaultCartRepository) RemoveLine(ctx context.Context, storeID, cartID, lineID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", lineID, cartID).
		Where("cart_id IN (?)", r.DB.Model(&models.CartModel{}).Select("id").Where("id = ? AND store_id = ?", cartID, storeID)).
		Delete(&models.CartLineModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DefaultCartRepository) Clear(ctx context.Context, storeID, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.CartModel
		err := tx.Where("id = ? AND store_id = ?", cartID, storeID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cartID).Delete(&models.CartLineModel{}).Error
	})
}

func (r *DefaultCartRepository) Merge(ctx context.Context, storeID, targetID, sourceID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock both carts in id order so two overlapping merges cannot
		// deadlock each other.
		first, second := targetID, sourceID
		if sourceID.String() < targetID.String() {
			first, second = sourceID, targetID
		}
		for _, id := range []uuid.UUID{first, second} {
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND store_id = ?", id, storeID).
				First(&models.CartModel{}).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var source models.CartModel
		err := tx.Preload("Lines").
			Where("id = ? AND store_id = ?", sourceID, storeID).
			First(&source).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already merged by an earlier attempt.
			return nil
		}
		if err != nil {
			return err
		}

		var target models.CartModel
		err = tx.Where("id = ? AND store_id = ?", targetID, storeID).First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		for i := range source.Lines {
			src := &source.Lines[i]
			var existing models.CartLineModel
			err := tx.Where("cart_id = ? AND product_id = ? AND variant_id IS NOT DISTINCT FROM ?",
				targetID, src.ProductID, src.VariantID).
				First(&existing).Error
			switch {
			case err == nil:
				// Same item on both sides: add quantities, keep the
				// target's price snapshot.
				err = tx.Model(&existing).
					Update("quantity", gorm.Expr("quantity + ?", src.Quantity)).Error
				if err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Model(src).Update("cart_id", targetID).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		if err := tx.Where("cart_id = ?", sourceID).Delete(&models.CartLineModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&source).Error
	})
}

// lockStock takes a FOR UPDATE lock on the stock-bearing row and returns the
// current counter. Variant lines lock the variant row, simple lines the
// product row.
func lockStock(tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID) (int, error) {
	if variantID != nil {
		var variant models.ProductVariantModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND product_id = ?", *variantID, productID).
			First(&variant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrNotFound
		}
		if err != nil {
			return 0, err
		}
		return variant.Stock, nil
	}
	var product models.ProductModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}
