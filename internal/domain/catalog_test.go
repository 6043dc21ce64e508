package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestRetailAmount(t *testing.T) {
	p := &Product{RetailPrice: dec(10000)}
	assert.True(t, p.RetailAmount().Equal(dec(10000)))

	p.DiscountPrice = decPtr(8000)
	assert.True(t, p.RetailAmount().Equal(dec(8000)))

	// A discount above retail is ignored.
	p.DiscountPrice = decPtr(12000)
	assert.True(t, p.RetailAmount().Equal(dec(10000)))
}

func TestValidatePricing(t *testing.T) {
	p := &Product{RetailPrice: dec(10000)}
	assert.NoError(t, p.ValidatePricing())

	p.RetailPrice = decimal.Zero
	assert.ErrorIs(t, p.ValidatePricing(), ErrNonPositivePrice)

	p.RetailPrice = dec(-500)
	assert.ErrorIs(t, p.ValidatePricing(), ErrNonPositivePrice)

	p.RetailPrice = dec(10000)
	p.Variants = []ProductVariant{{Size: "M", PriceOverride: decPtr(-100)}}
	assert.ErrorIs(t, p.ValidatePricing(), ErrNonPositivePrice)

	p.Variants[0].PriceOverride = decPtr(12000)
	p.Variants[0].WholesalePriceOverride = decPtr(0)
	assert.ErrorIs(t, p.ValidatePricing(), ErrNonPositivePrice)

	p.Variants[0].WholesalePriceOverride = decPtr(9000)
	assert.NoError(t, p.ValidatePricing())
}

func TestResolveCatalogItemSimpleProduct(t *testing.T) {
	p := &Product{ID: uuid.New(), Stock: 5}

	item, err := ResolveCatalogItem(p, nil)
	require.NoError(t, err)
	assert.Nil(t, item.Variant)
	assert.Equal(t, 5, item.AvailableStock())
	assert.Nil(t, item.VariantID())

	variantID := uuid.New()
	_, err = ResolveCatalogItem(p, &variantID)
	assert.ErrorIs(t, err, ErrVariantNotAllowed)
}

func TestResolveCatalogItemVariantedProduct(t *testing.T) {
	vID := uuid.New()
	p := &Product{
		ID:          uuid.New(),
		HasVariants: true,
		Stock:       0,
		Variants: []ProductVariant{
			{ID: vID, Size: "M", Stock: 3, IsActive: true},
		},
	}

	_, err := ResolveCatalogItem(p, nil)
	assert.ErrorIs(t, err, ErrVariantRequired)

	other := uuid.New()
	_, err = ResolveCatalogItem(p, &other)
	assert.ErrorIs(t, err, ErrVariantMismatch)

	item, err := ResolveCatalogItem(p, &vID)
	require.NoError(t, err)
	require.NotNil(t, item.Variant)
	// Varianted products keep stock on the variant row.
	assert.Equal(t, 3, item.AvailableStock())
	assert.Equal(t, vID, *item.VariantID())
}

func TestResolveCatalogItemInactiveVariant(t *testing.T) {
	vID := uuid.New()
	p := &Product{
		HasVariants: true,
		Variants:    []ProductVariant{{ID: vID, Size: "L", Stock: 10, IsActive: false}},
	}
	_, err := ResolveCatalogItem(p, &vID)
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCartFindLine(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()
	cart := &Cart{Lines: []CartLine{
		{ProductID: productID, VariantID: nil, Quantity: 1},
		{ProductID: productID, VariantID: &variantID, Quantity: 2},
	}}

	simple := cart.FindLine(productID, nil)
	require.NotNil(t, simple)
	assert.Equal(t, 1, simple.Quantity)

	varianted := cart.FindLine(productID, &variantID)
	require.NotNil(t, varianted)
	assert.Equal(t, 2, varianted.Quantity)

	other := uuid.New()
	assert.Nil(t, cart.FindLine(productID, &other))
	assert.Nil(t, cart.FindLine(other, nil))
}

func TestCartTotals(t *testing.T) {
	cart := &Cart{Lines: []CartLine{
		{Quantity: 2, UnitPrice: dec(1500)},
		{Quantity: 1, UnitPrice: dec(700)},
	}}
	assert.True(t, cart.Total().Equal(dec(3700)))
	assert.Equal(t, 3, cart.ItemsCount())
}
