package domain

import (
	"context"

	"github.com/google/uuid"
)

// CatalogRepository is tenant-scoped: every lookup carries the store id and
// a miss in another tenant is indistinguishable from a plain miss
// (ErrNotFound either way). Soft-deleted rows are excluded unless a method
// says otherwise.
type CatalogRepository interface {
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*Product, error)
	GetProductBySlug(ctx context.Context, storeID uuid.UUID, slug string) (*Product, error)
	ListProducts(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*Product, int64, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error

	SoftDeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error
	RestoreProduct(ctx context.Context, storeID, productID uuid.UUID) error
	HardDeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error

	// IncrementSalesCount is a best-effort post-commit counter bump, kept
	// outside the order transaction on purpose.
	IncrementSalesCount(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) error
}
