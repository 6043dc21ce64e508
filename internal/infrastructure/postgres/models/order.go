package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderModel struct {
	BaseModel
	StoreID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_orders_store_status"`
	OrderNumber string     `gorm:"uniqueIndex;not null"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"not null;default:new;index:idx_orders_store_status"`

	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	AddressLine1 string `gorm:"not null"`
	AddressLine2 string
	City         string `gorm:"not null"`
	PostalCode   string
	Country      string `gorm:"type:varchar(2);not null;default:RU"`
	CustomerNote string `gorm:"type:text"`
	AdminNote    string `gorm:"type:text"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Tax          decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Discount     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsWholesale  bool            `gorm:"not null;default:false"`

	TrackingNumber string
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderLineModel struct {
	BaseModel
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Nullable on purpose: order history survives catalog deletions.
	ProductID   *uuid.UUID      `gorm:"type:uuid;index;constraint:OnDelete:SET NULL"`
	VariantID   *uuid.UUID      `gorm:"type:uuid"`
	ProductName string          `gorm:"not null"`
	ProductSKU  string
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsWholesale bool            `gorm:"not null;default:false"`
}
