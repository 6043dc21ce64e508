package mappers

import (
	"github.com/google/uuid"

	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

func ToDomainStore(m *models.StoreModel) *domain.Store {
	return &domain.Store{
		ID:                       m.ID,
		Domain:                   m.Domain,
		Name:                     m.Name,
		Slug:                     m.Slug,
		Currency:                 m.Currency,
		EnableWholesale:          m.EnableWholesale,
		WholesaleDiscountPercent: m.WholesaleDiscountPercent,
		IsActive:                 m.IsActive,
		Settings:                 ToDomainStoreSettings(&m.Settings),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func ToDomainStoreSettings(m *models.StoreSettingsModel) domain.StoreSettings {
	return domain.StoreSettings{
		EnableFreeShipping:     m.EnableFreeShipping,
		FreeShippingThreshold:  m.FreeShippingThreshold,
		ShippingCost:           m.ShippingCost,
		TaxRate:                m.TaxRate,
		TaxIncluded:            m.TaxIncluded,
		MinOrderAmount:         m.MinOrderAmount,
		MaxOrderAmount:         m.MaxOrderAmount,
		OrderNotificationEmail: m.OrderNotificationEmail,
	}
}

func ToGORMStore(s *domain.Store) *models.StoreModel {
	m := &models.StoreModel{
		Domain:                   s.Domain,
		Name:                     s.Name,
		Slug:                     s.Slug,
		Currency:                 s.Currency,
		EnableWholesale:          s.EnableWholesale,
		WholesaleDiscountPercent: s.WholesaleDiscountPercent,
		IsActive:                 s.IsActive,
		Settings:                 ToGORMStoreSettings(s.ID, s.Settings),
	}
	m.ID = s.ID
	return m
}

func ToGORMStoreSettings(storeID uuid.UUID, s domain.StoreSettings) models.StoreSettingsModel {
	return models.StoreSettingsModel{
		StoreID:                storeID,
		EnableFreeShipping:     s.EnableFreeShipping,
		FreeShippingThreshold:  s.FreeShippingThreshold,
		ShippingCost:           s.ShippingCost,
		TaxRate:                s.TaxRate,
		TaxIncluded:            s.TaxIncluded,
		MinOrderAmount:         s.MinOrderAmount,
		MaxOrderAmount:         s.MaxOrderAmount,
		OrderNotificationEmail: s.OrderNotificationEmail,
	}
}
