package mappers

import (
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(m *models.OrderModel) *domain.Order {
	lines := make([]domain.OrderLine, len(m.Lines))
	for i := range m.Lines {
		lines[i] = ToDomainOrderLine(&m.Lines[i])
	}
	return &domain.Order{
		ID:          m.ID,
		StoreID:     m.StoreID,
		OrderNumber: m.OrderNumber,
		UserID:      m.UserID,
		Status:      domain.OrderStatus(m.Status),
		Details: domain.BuyerDetails{
			FirstName:    m.FirstName,
			LastName:     m.LastName,
			Email:        m.Email,
			Phone:        m.Phone,
			AddressLine1: m.AddressLine1,
			AddressLine2: m.AddressLine2,
			City:         m.City,
			PostalCode:   m.PostalCode,
			Country:      m.Country,
			CustomerNote: m.CustomerNote,
		},
		Subtotal:       m.Subtotal,
		ShippingCost:   m.ShippingCost,
		Tax:            m.Tax,
		Discount:       m.Discount,
		Total:          m.Total,
		IsWholesale:    m.IsWholesale,
		TrackingNumber: m.TrackingNumber,
		AdminNote:      m.AdminNote,
		Lines:          lines,
		PaidAt:         m.PaidAt,
		ShippedAt:      m.ShippedAt,
		DeliveredAt:    m.DeliveredAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToDomainOrderLine(m *models.OrderLineModel) domain.OrderLine {
	return domain.OrderLine{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		ProductName: m.ProductName,
		ProductSKU:  m.ProductSKU,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		IsWholesale: m.IsWholesale,
	}
}

func ToGORMOrder(o *domain.Order) *models.OrderModel {
	lines := make([]models.OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		lines[i] = ToGORMOrderLine(&o.Lines[i])
	}
	m := &models.OrderModel{
		StoreID:      o.StoreID,
		OrderNumber:  o.OrderNumber,
		UserID:       o.UserID,
		Status:       string(o.Status),
		FirstName:    o.Details.FirstName,
		LastName:     o.Details.LastName,
		Email:        o.Details.Email,
		Phone:        o.Details.Phone,
		AddressLine1: o.Details.AddressLine1,
		AddressLine2: o.Details.AddressLine2,
		City:         o.Details.City,
		PostalCode:   o.Details.PostalCode,
		Country:      o.Details.Country,
		CustomerNote: o.Details.CustomerNote,
		AdminNote:    o.AdminNote,
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		Tax:          o.Tax,
		Discount:     o.Discount,
		Total:        o.Total,
		IsWholesale:  o.IsWholesale,

		TrackingNumber: o.TrackingNumber,
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		Lines:          lines,
	}
	m.ID = o.ID
	return m
}

func ToGORMOrderLine(l *domain.OrderLine) models.OrderLineModel {
	m := models.OrderLineModel{
		OrderID:     l.OrderID,
		ProductID:   l.ProductID,
		VariantID:   l.VariantID,
		ProductName: l.ProductName,
		ProductSKU:  l.ProductSKU,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		IsWholesale: l.IsWholesale,
	}
	m.ID = l.ID
	return m
}
