package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/vendaro/storefront-service/internal/domain"
)

// PricingResolver computes the effective unit price of a catalog item for a
// buyer. Pure: same inputs, same price, no storage access.
type PricingResolver struct{}

func NewPricingResolver() *PricingResolver {
	return &PricingResolver{}
}

// PriceFor resolves (amount, is_wholesale) per the store's price tiers.
//
// The retail base is the product's discounted amount, except a variant price
// override replaces it absolutely (no discount logic at variant level). A
// wholesale-eligible buyer gets the explicit wholesale price (variant
// override first), falling back to the store-wide percent off the retail
// base. Rounding happens once, here, on the final amount.
func (r *PricingResolver) PriceFor(store *domain.Store, item domain.CatalogItem, buyer *domain.Buyer) (decimal.Decimal, bool) {
	retail := item.Product.RetailAmount()
	if item.Variant != nil && item.Variant.PriceOverride != nil {
		retail = *item.Variant.PriceOverride
	}

	if !buyer.WholesaleEligible(store) {
		return domain.RoundPrice(retail), false
	}

	if item.Variant != nil && item.Variant.WholesalePriceOverride != nil {
		return domain.RoundPrice(*item.Variant.WholesalePriceOverride), true
	}
	if item.Product.WholesalePrice != nil {
		return domain.RoundPrice(*item.Product.WholesalePrice), true
	}
	if store.WholesaleDiscountPercent.IsPositive() {
		return domain.RoundPrice(domain.PercentOff(retail, store.WholesaleDiscountPercent)), true
	}
	return domain.RoundPrice(retail), true
}
