package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingFor(t *testing.T) {
	s := StoreSettings{ShippingCost: dec(300)}
	assert.True(t, s.ShippingFor(dec(1000)).Equal(dec(300)))

	s.EnableFreeShipping = true
	s.FreeShippingThreshold = dec(5000)
	assert.True(t, s.ShippingFor(dec(4999)).Equal(dec(300)))
	assert.True(t, s.ShippingFor(dec(5000)).IsZero())
}

func TestTaxFor(t *testing.T) {
	s := StoreSettings{TaxRate: dec(20), TaxIncluded: true}
	assert.True(t, s.TaxFor(dec(1000)).IsZero())

	s.TaxIncluded = false
	assert.True(t, s.TaxFor(dec(1000)).Equal(dec(200)))

	s.TaxRate = decimal.Zero
	assert.True(t, s.TaxFor(dec(1000)).IsZero())
}

func TestWholesaleEligible(t *testing.T) {
	storeID := uuid.New()
	otherID := uuid.New()
	store := &Store{ID: storeID, EnableWholesale: true}

	var nobody *Buyer
	assert.False(t, nobody.WholesaleEligible(store))

	retail := &Buyer{IsWholesale: false}
	assert.False(t, retail.WholesaleEligible(store))

	wholesale := &Buyer{IsWholesale: true}
	assert.True(t, wholesale.WholesaleEligible(store))

	boundHere := &Buyer{IsWholesale: true, StoreID: &storeID}
	assert.True(t, boundHere.WholesaleEligible(store))

	boundElsewhere := &Buyer{IsWholesale: true, StoreID: &otherID}
	assert.False(t, boundElsewhere.WholesaleEligible(store))

	store.EnableWholesale = false
	assert.False(t, wholesale.WholesaleEligible(store))
}
