package domain

import (
	"time"

	"github.com/google/uuid"
)

// Buyer is the identity the upstream auth layer hands to the core. A buyer
// may be bound to a home store; wholesale eligibility is a joint condition
// of the buyer flag and the store relationship, checked by the pricing layer.
type Buyer struct {
	ID          uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	IsWholesale bool
	StoreID     *uuid.UUID
	CreatedAt   time.Time
}

// WholesaleEligible reports whether this buyer gets wholesale prices in the
// given store. A buyer bound to another store is retail everywhere else.
func (b *Buyer) WholesaleEligible(store *Store) bool {
	if b == nil || !b.IsWholesale {
		return false
	}
	if !store.EnableWholesale {
		return false
	}
	if b.StoreID != nil && *b.StoreID != store.ID {
		return false
	}
	return true
}
