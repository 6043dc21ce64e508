package mappers

import (
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

func ToDomainProduct(m *models.ProductModel) *domain.Product {
	variants := make([]domain.ProductVariant, len(m.Variants))
	for i := range m.Variants {
		variants[i] = ToDomainVariant(&m.Variants[i])
	}
	return &domain.Product{
		ID:             m.ID,
		StoreID:        m.StoreID,
		Name:           m.Name,
		Slug:           m.Slug,
		SKU:            m.SKU,
		Description:    m.Description,
		RetailPrice:    m.RetailPrice,
		WholesalePrice: m.WholesalePrice,
		DiscountPrice:  m.DiscountPrice,
		Stock:          m.Stock,
		TrackStock:     m.TrackStock,
		HasVariants:    m.HasVariants,
		Available:      m.Available,
		SalesCount:     m.SalesCount,
		Variants:       variants,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToDomainVariant(m *models.ProductVariantModel) domain.ProductVariant {
	return domain.ProductVariant{
		ID:                     m.ID,
		ProductID:              m.ProductID,
		Size:                   m.Size,
		SKU:                    m.SKU,
		Stock:                  m.Stock,
		PriceOverride:          m.PriceOverride,
		WholesalePriceOverride: m.WholesalePriceOverride,
		IsActive:               m.IsActive,
		SalesCount:             m.SalesCount,
	}
}

func ToGORMProduct(p *domain.Product) *models.ProductModel {
	variants := make([]models.ProductVariantModel, len(p.Variants))
	for i := range p.Variants {
		variants[i] = ToGORMVariant(&p.Variants[i])
	}
	m := &models.ProductModel{
		StoreID:        p.StoreID,
		Name:           p.Name,
		Slug:           p.Slug,
		SKU:            p.SKU,
		Description:    p.Description,
		RetailPrice:    p.RetailPrice,
		WholesalePrice: p.WholesalePrice,
		DiscountPrice:  p.DiscountPrice,
		Stock:          p.Stock,
		TrackStock:     p.TrackStock,
		HasVariants:    p.HasVariants,
		Available:      p.Available,
		SalesCount:     p.SalesCount,
		Variants:       variants,
	}
	m.ID = p.ID
	return m
}

func ToGORMVariant(v *domain.ProductVariant) models.ProductVariantModel {
	m := models.ProductVariantModel{
		ProductID:              v.ProductID,
		Size:                   v.Size,
		SKU:                    v.SKU,
		Stock:                  v.Stock,
		PriceOverride:          v.PriceOverride,
		WholesalePriceOverride: v.WholesalePriceOverride,
		IsActive:               v.IsActive,
		SalesCount:             v.SalesCount,
	}
	m.ID = v.ID
	return m
}
