package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the tenant root. Every other entity carries its ID and must never
// be read or written without it.
type Store struct {
	ID                       uuid.UUID
	Domain                   string
	Name                     string
	Slug                     string
	Currency                 string
	EnableWholesale          bool
	WholesaleDiscountPercent decimal.Decimal
	IsActive                 bool
	Settings                 StoreSettings
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// StoreSettings holds per-store checkout parameters. Shipping and tax are
// resolved from here at order creation time, not frozen into the cart.
type StoreSettings struct {
	EnableFreeShipping     bool
	FreeShippingThreshold  decimal.Decimal
	ShippingCost           decimal.Decimal
	TaxRate                decimal.Decimal
	TaxIncluded            bool
	MinOrderAmount         decimal.Decimal
	MaxOrderAmount         decimal.Decimal
	OrderNotificationEmail string
}

// ShippingFor returns the shipping cost for a given cart subtotal.
func (s StoreSettings) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if s.EnableFreeShipping && subtotal.GreaterThanOrEqual(s.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.ShippingCost
}

// TaxFor returns the tax on a subtotal. Stores with tax-inclusive prices
// never add tax on top.
func (s StoreSettings) TaxFor(subtotal decimal.Decimal) decimal.Decimal {
	if s.TaxIncluded || !s.TaxRate.IsPositive() {
		return decimal.Zero
	}
	return RoundPrice(subtotal.Mul(s.TaxRate.Div(decimal.NewFromInt(100))))
}
