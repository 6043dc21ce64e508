package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrTenantNotFound          = errors.New("tenant not found")
	ErrCrossTenantAccess       = errors.New("cross-tenant access")
	ErrNotFound                = errors.New("not found")
	ErrItemUnavailable         = errors.New("item unavailable")
	ErrVariantRequired         = errors.New("variant required for this product")
	ErrVariantNotAllowed       = errors.New("product has no variants")
	ErrVariantMismatch         = errors.New("variant does not belong to product")
	ErrCartOwnerMissing        = errors.New("cart owner is not identified")
	ErrCartAlreadyConverted    = errors.New("cart already converted to order")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrStockExhausted          = errors.New("stock exhausted")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrDuplicateOrderNumber    = errors.New("duplicate order number")
	ErrDuplicateCart           = errors.New("active cart already exists")
	ErrNonPositivePrice        = errors.New("price must be positive")
)

// InsufficientStockError is returned from cart mutations when the requested
// quantity exceeds what is on hand. Available is reported back to the caller.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// OrderAmountError is returned when an order total falls outside the store's
// configured bounds.
type OrderAmountError struct {
	Total decimal.Decimal
	Limit decimal.Decimal
	Above bool
}

func (e *OrderAmountError) Error() string {
	if e.Above {
		return fmt.Sprintf("order total %s above maximum %s", e.Total, e.Limit)
	}
	return fmt.Sprintf("order total %s below minimum %s", e.Total, e.Limit)
}
