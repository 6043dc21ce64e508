package domain

import (
	"context"

	"github.com/google/uuid"
)

type CartRepository interface {
	GetByID(ctx context.Context, storeID, cartID uuid.UUID) (*Cart, error)
	GetActiveByUser(ctx context.Context, storeID, userID uuid.UUID) (*Cart, error)
	GetActiveBySession(ctx context.Context, storeID uuid.UUID, sessionKey string) (*Cart, error)
	// Create returns ErrDuplicateCart when the (store, user) active-cart
	// constraint fires; callers are expected to reread.
	Create(ctx context.Context, cart *Cart) error

	// UpsertLine inserts the line or increments the quantity of the
	// existing (product, variant) line, re-checking stock under a row lock
	// in the same transaction. The snapshotted price of an existing line
	// is never overwritten.
	UpsertLine(ctx context.Context, storeID, cartID uuid.UUID, line *CartLine, trackStock bool) (*CartLine, error)
	// UpdateLineQuantity re-validates stock but leaves the price snapshot
	// untouched.
	UpdateLineQuantity(ctx context.Context, storeID, cartID, lineID uuid.UUID, quantity int) error
	RemoveLine(ctx context.Context, storeID, cartID, lineID uuid.UUID) error
	Clear(ctx context.Context, storeID, cartID uuid.UUID) error

	// Merge folds the source cart into the target and deletes the source,
	// all in one transaction. A missing source means a retry of an already
	// applied merge and is a no-op.
	Merge(ctx context.Context, storeID, targetID, sourceID uuid.UUID) error
}
