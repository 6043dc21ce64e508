package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-purchase basket. Owner is either a user or an
// anonymous session key, never both. At most one active cart exists per
// (store, user) pair.
type Cart struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	UserID     *uuid.UUID
	SessionKey *string
	IsActive   bool
	Lines      []CartLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartLine is one (product, variant) entry. UnitPrice and IsWholesale are
// snapshotted when the line is inserted and stay sticky afterwards; quantity
// updates re-validate stock but never re-price.
type CartLine struct {
	ID          uuid.UUID
	CartID      uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	IsWholesale bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l *CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums the snapshotted line prices. Recomputed on demand, never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].Subtotal())
	}
	return total
}

func (c *Cart) ItemsCount() int {
	n := 0
	for i := range c.Lines {
		n += c.Lines[i].Quantity
	}
	return n
}

// FindLine locates the line for a (product, variant) pair, nil variant
// matching nil only.
func (c *Cart) FindLine(productID uuid.UUID, variantID *uuid.UUID) *CartLine {
	for i := range c.Lines {
		l := &c.Lines[i]
		if l.ProductID != productID {
			continue
		}
		if (l.VariantID == nil) != (variantID == nil) {
			continue
		}
		if l.VariantID != nil && *l.VariantID != *variantID {
			continue
		}
		return l
	}
	return nil
}
