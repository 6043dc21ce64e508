package models

import "github.com/google/uuid"

type BuyerModel struct {
	BaseModel
	Email       string     `gorm:"uniqueIndex;not null"`
	FirstName   string
	LastName    string
	IsWholesale bool       `gorm:"index;not null;default:false"`
	StoreID     *uuid.UUID `gorm:"type:uuid;index"`
}
