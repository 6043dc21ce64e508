package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StoreModel struct {
	BaseModel
	Domain                   string          `gorm:"uniqueIndex;not null"`
	Name                     string          `gorm:"not null"`
	Slug                     string          `gorm:"uniqueIndex;not null"`
	Currency                 string          `gorm:"type:varchar(3);not null;default:RUB"`
	EnableWholesale          bool            `gorm:"not null;default:false"`
	WholesaleDiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	IsActive                 bool            `gorm:"index;not null;default:true"`
	DeletedAt                gorm.DeletedAt  `gorm:"index"`

	Settings StoreSettingsModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

type StoreSettingsModel struct {
	StoreID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EnableFreeShipping     bool            `gorm:"not null;default:false"`
	FreeShippingThreshold  decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	ShippingCost           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	TaxRate                decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	TaxIncluded            bool            `gorm:"not null;default:true"`
	MinOrderAmount         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	MaxOrderAmount         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	OrderNotificationEmail string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
