package mappers

import (
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

func ToDomainCart(m *models.CartModel) *domain.Cart {
	lines := make([]domain.CartLine, len(m.Lines))
	for i := range m.Lines {
		lines[i] = ToDomainCartLine(&m.Lines[i])
	}
	return &domain.Cart{
		ID:         m.ID,
		StoreID:    m.StoreID,
		UserID:     m.UserID,
		SessionKey: m.SessionKey,
		IsActive:   m.IsActive,
		Lines:      lines,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToDomainCartLine(m *models.CartLineModel) domain.CartLine {
	return domain.CartLine{
		ID:          m.ID,
		CartID:      m.CartID,
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		IsWholesale: m.IsWholesale,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToGORMCart(c *domain.Cart) *models.CartModel {
	m := &models.CartModel{
		StoreID:    c.StoreID,
		UserID:     c.UserID,
		SessionKey: c.SessionKey,
		IsActive:   c.IsActive,
	}
	m.ID = c.ID
	return m
}

func ToGORMCartLine(l *domain.CartLine) *models.CartLineModel {
	m := &models.CartLineModel{
		CartID:      l.CartID,
		ProductID:   l.ProductID,
		VariantID:   l.VariantID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		IsWholesale: l.IsWholesale,
	}
	m.ID = l.ID
	return m
}
