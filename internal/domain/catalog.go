package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID             uuid.UUID
	StoreID        uuid.UUID
	Name           string
	Slug           string
	SKU            string
	Description    string
	RetailPrice    decimal.Decimal
	WholesalePrice *decimal.Decimal
	DiscountPrice  *decimal.Decimal
	Stock          int
	TrackStock     bool
	HasVariants    bool
	Available      bool
	SalesCount     int
	Variants       []ProductVariant
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RetailAmount is the base retail price: the discount price when one is set
// and actually lower, otherwise the regular retail price.
func (p *Product) RetailAmount() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.RetailPrice) {
		return *p.DiscountPrice
	}
	return p.RetailPrice
}

// ValidatePricing gates catalog writes: the retail price must be positive,
// and any price override set on a variant must be positive too. Zero or
// negative amounts would otherwise flow straight into cart snapshots.
func (p *Product) ValidatePricing() error {
	if !p.RetailPrice.IsPositive() {
		return ErrNonPositivePrice
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.PriceOverride != nil && !v.PriceOverride.IsPositive() {
			return ErrNonPositivePrice
		}
		if v.WholesalePriceOverride != nil && !v.WholesalePriceOverride.IsPositive() {
			return ErrNonPositivePrice
		}
	}
	return nil
}

func (p *Product) VariantByID(id uuid.UUID) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// ProductVariant is one size of a varianted product, with its own stock and
// optional absolute price overrides.
type ProductVariant struct {
	ID                     uuid.UUID
	ProductID              uuid.UUID
	Size                   string
	SKU                    string
	Stock                  int
	PriceOverride          *decimal.Decimal
	WholesalePriceOverride *decimal.Decimal
	IsActive               bool
	SalesCount             int
}

// CatalogItem is the unit a cart line points at: either a simple product
// (Variant nil) or exactly one variant of a varianted product. Pricing and
// stock checks dispatch over this explicitly instead of branching on
// has_variants at every call site.
type CatalogItem struct {
	Product *Product
	Variant *ProductVariant
}

// ResolveCatalogItem validates the (product, variant id) pair. Products with
// variants require a variant id; simple products reject one.
func ResolveCatalogItem(p *Product, variantID *uuid.UUID) (CatalogItem, error) {
	if p.HasVariants {
		if variantID == nil {
			return CatalogItem{}, ErrVariantRequired
		}
		v := p.VariantByID(*variantID)
		if v == nil {
			return CatalogItem{}, ErrVariantMismatch
		}
		if !v.IsActive {
			return CatalogItem{}, ErrItemUnavailable
		}
		return CatalogItem{Product: p, Variant: v}, nil
	}
	if variantID != nil {
		return CatalogItem{}, ErrVariantNotAllowed
	}
	return CatalogItem{Product: p}, nil
}

// AvailableStock is the authoritative counter the cart validates against.
// A varianted product keeps stock on its variants; its own field is inert.
func (ci CatalogItem) AvailableStock() int {
	if ci.Variant != nil {
		return ci.Variant.Stock
	}
	return ci.Product.Stock
}

func (ci CatalogItem) TracksStock() bool {
	return ci.Product.TrackStock
}

func (ci CatalogItem) VariantID() *uuid.UUID {
	if ci.Variant == nil {
		return nil
	}
	id := ci.Variant.ID
	return &id
}
