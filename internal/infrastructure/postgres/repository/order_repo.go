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

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

// CreateFromCart converts a cart into an order in one transaction. The cart
// deactivation is the serialization point: of two concurrent checkouts on the
// same cart exactly one flips is_active and the other gets
// ErrCartAlreadyConverted. The lines are re-read after the flip, inside the
// transaction, so a line upserted concurrently up to that point is still
// materialized instead of silently dropped. Stock decrements carry a floor
// guard, so the whole order rolls back when any line exceeds what is left.
func (r *DefaultOrderRepository) CreateFromCart(ctx context.Context, storeID, cartID uuid.UUID, build func(cart *domain.Cart) (*domain.Order, error)) (*domain.Order, error) {
	var order *domain.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartModel{}).
			Where("id = ? AND store_id = ? AND is_active = ?", cartID, storeID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			err := tx.Model(&models.CartModel{}).
				Where("id = ? AND store_id = ?", cartID, storeID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrCartAlreadyConverted
		}

		var cartModel models.CartModel
		err := tx.Preload("Lines").
			Where("id = ?", cartID).
			First(&cartModel).Error
		if err != nil {
			return err
		}

		built, err := build(mappers.ToDomainCart(&cartModel))
		if err != nil {
			return err
		}

		model := mappers.ToGORMOrder(built)
		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateOrderNumber
			}
			return err
		}

		for i := range built.Lines {
			line := &built.Lines[i]
			if line.ProductID == nil {
				continue
			}
			if err := decrementStock(tx, *line.ProductID, line.VariantID, line.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartLineModel{}).Error; err != nil {
			return err
		}

		built.ID = model.ID
		built.CreatedAt = model.CreatedAt
		built.UpdatedAt = model.UpdatedAt
		for i := range model.Lines {
			built.Lines[i].ID = model.Lines[i].ID
			built.Lines[i].OrderID = model.ID
		}
		order = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// decrementStock runs the conditional decrement for one line. Zero rows
// affected means the floor guard rejected it. Products that do not track
// stock, and products deleted since the line was added, are left alone.
func decrementStock(tx *gorm.DB, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	var track []bool
	err := tx.Model(&models.ProductModel{}).Unscoped().
		Where("id = ?", productID).
		Pluck("track_stock", &track).Error
	if err != nil {
		return err
	}
	if len(track) == 0 || !track[0] {
		return nil
	}

	var res *gorm.DB
	if variantID != nil {
		res = tx.Model(&models.ProductVariantModel{}).
			Where("id = ? AND product_id = ? AND stock >= ?", *variantID, productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
	} else {
		res = tx.Model(&models.ProductModel{}).Unscoped().
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStockExhausted
	}
	return nil
}

func (r *DefaultOrderRepository) GetByID(ctx context.Context, storeID, orderID uuid.UUID) (*domain.Order, error) {
	var order models.OrderModel
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND store_id = ?", orderID, storeID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetByNumber(ctx context.Context, storeID uuid.UUID, orderNumber string) (*domain.Order, error) {
	var order models.OrderModel
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("order_number = ? AND store_id = ?", orderNumber, storeID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) ListByUser(ctx context.Context, storeID, userID uuid.UUID, limit, offset int) ([]*domain.Order, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.OrderModel{}).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	err = r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, len(rows))
	for i := range rows {
		orders[i] = mappers.ToDomainOrder(&rows[i])
	}
	return orders, total, nil
}

func (r *DefaultOrderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	res := r.DB.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND store_id = ?", order.ID, order.StoreID).
		Updates(map[string]interface{}{
			"status":          string(order.Status),
			"tracking_number": order.TrackingNumber,
			"admin_note":      order.AdminNote,
			"paid_at":         order.PaidAt,
			"shipped_at":      order.ShippedAt,
			"delivered_at":    order.DeliveredAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
