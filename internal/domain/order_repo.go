package domain

import (
	"context"

	"github.com/google/uuid"
)

type OrderRepository interface {
	// CreateFromCart materializes an order in a single transaction:
	// deactivate the source cart (the serialization point - zero rows
	// updated means another writer won and ErrCartAlreadyConverted is
	// returned), re-read the cart lines inside the same transaction so
	// every line committed before the flip is included, hand the cart to
	// build to assemble the order, insert it with its lines, decrement
	// stock with a floor check for every tracked line (ErrStockExhausted
	// rolls the whole thing back), then clear the cart lines. An error
	// from build aborts the transaction untouched. A unique violation on
	// the order number surfaces as ErrDuplicateOrderNumber.
	CreateFromCart(ctx context.Context, storeID, cartID uuid.UUID, build func(cart *Cart) (*Order, error)) (*Order, error)

	GetByID(ctx context.Context, storeID, orderID uuid.UUID) (*Order, error)
	GetByNumber(ctx context.Context, storeID uuid.UUID, orderNumber string) (*Order, error)
	ListByUser(ctx context.Context, storeID, userID uuid.UUID, limit, offset int) ([]*Order, int64, error)
	// UpdateStatus persists status, lifecycle timestamps, tracking number
	// and admin note. Never touches lines or totals.
	UpdateStatus(ctx context.Context, order *Order) error
}
