package mappers

import (
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

func ToDomainBuyer(m *models.BuyerModel) *domain.Buyer {
	return &domain.Buyer{
		ID:          m.ID,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		IsWholesale: m.IsWholesale,
		StoreID:     m.StoreID,
		CreatedAt:   m.CreatedAt,
	}
}

func ToGORMBuyer(b *domain.Buyer) *models.BuyerModel {
	m := &models.BuyerModel{
		Email:       b.Email,
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		IsWholesale: b.IsWholesale,
		StoreID:     b.StoreID,
	}
	m.ID = b.ID
	return m
}
