package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartModel struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_user_cart"`
	// Exactly one of UserID / SessionKey is set. The partial unique index
	// is the race arbiter for concurrent identify calls.
	UserID     *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_active_user_cart,where:user_id IS NOT NULL AND is_active"`
	SessionKey *string    `gorm:"type:varchar(64);index"`
	IsActive   bool       `gorm:"index;not null;default:true"`

	Lines []CartLineModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartLineModel struct {
	BaseModel
	CartID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_cart_lines_item"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_cart_lines_item"`
	VariantID   *uuid.UUID `gorm:"type:uuid;index:idx_cart_lines_item"`
	ProductName string     `gorm:"not null"`
	Quantity    int        `gorm:"not null"`
	// Snapshotted at insertion time, sticky afterwards.
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsWholesale bool            `gorm:"not null;default:false"`
}
