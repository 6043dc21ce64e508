package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductModel struct {
	BaseModel
	StoreID        uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uniq_products_store_slug"`
	Name           string           `gorm:"not null;index"`
	Slug           string           `gorm:"not null;uniqueIndex:uniq_products_store_slug"`
	SKU            string           `gorm:"index"`
	Description    string           `gorm:"type:text"`
	RetailPrice    decimal.Decimal  `gorm:"type:numeric(10,2);not null;check:retail_price > 0"`
	WholesalePrice *decimal.Decimal `gorm:"type:numeric(10,2)"`
	DiscountPrice  *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Stock          int              `gorm:"not null;default:0"`
	TrackStock     bool             `gorm:"not null;default:true"`
	HasVariants    bool             `gorm:"not null;default:false"`
	Available      bool             `gorm:"index;not null;default:true"`
	SalesCount     int              `gorm:"not null;default:0"`
	DeletedAt      gorm.DeletedAt   `gorm:"index"`

	Variants []ProductVariantModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductVariantModel struct {
	BaseModel
	ProductID              uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uniq_variants_product_size"`
	Size                   string           `gorm:"not null;uniqueIndex:uniq_variants_product_size"`
	SKU                    string           `gorm:"index"`
	Stock                  int              `gorm:"not null;default:0"`
	PriceOverride          *decimal.Decimal `gorm:"type:numeric(10,2)"`
	WholesalePriceOverride *decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsActive               bool             `gorm:"not null;default:true"`
	SalesCount             int              `gorm:"not null;default:0"`
}
