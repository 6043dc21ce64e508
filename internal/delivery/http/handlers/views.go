package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendaro/storefront-service/internal/domain"
)

type cartLineView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   *uuid.UUID      `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	IsWholesale bool            `json:"is_wholesale"`
}

type cartView struct {
	ID         uuid.UUID       `json:"id"`
	ItemsCount int             `json:"items_count"`
	Total      decimal.Decimal `json:"total"`
	Lines      []cartLineView  `json:"lines"`
}

func toCartView(cart *domain.Cart) cartView {
	lines := make([]cartLineView, len(cart.Lines))
	for i := range cart.Lines {
		lines[i] = toCartLineView(&cart.Lines[i])
	}
	return cartView{
		ID:         cart.ID,
		ItemsCount: cart.ItemsCount(),
		Total:      cart.Total(),
		Lines:      lines,
	}
}

func toCartLineView(l *domain.CartLine) cartLineView {
	return cartLineView{
		ID:          l.ID,
		ProductID:   l.ProductID,
		VariantID:   l.VariantID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal(),
		IsWholesale: l.IsWholesale,
	}
}

type orderLineView struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	VariantID   *uuid.UUID      `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type orderView struct {
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Tax            decimal.Decimal `json:"tax"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	IsWholesale    bool            `json:"is_wholesale"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Lines          []orderLineView `json:"lines"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	ShippedAt      *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toOrderView(o *domain.Order) orderView {
	lines := make([]orderLineView, len(o.Lines))
	for i := range o.Lines {
		l := &o.Lines[i]
		lines[i] = orderLineView{
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			ProductSKU:  l.ProductSKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		}
	}
	return orderView{
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal,
		ShippingCost:   o.ShippingCost,
		Tax:            o.Tax,
		Discount:       o.Discount,
		Total:          o.Total,
		IsWholesale:    o.IsWholesale,
		TrackingNumber: o.TrackingNumber,
		Lines:          lines,
		PaidAt:         o.PaidAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CreatedAt:      o.CreatedAt,
	}
}

type productVariantView struct {
	ID       uuid.UUID        `json:"id"`
	Size     string           `json:"size"`
	SKU      string           `json:"sku,omitempty"`
	Stock    int              `json:"stock"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive bool             `json:"is_active"`
}

type productView struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	SKU         string               `json:"sku,omitempty"`
	Description string               `json:"description,omitempty"`
	RetailPrice decimal.Decimal      `json:"retail_price"`
	Stock       int                  `json:"stock"`
	HasVariants bool                 `json:"has_variants"`
	Available   bool                 `json:"available"`
	Variants    []productVariantView `json:"variants,omitempty"`
}

func toProductView(p *domain.Product) productView {
	variants := make([]productVariantView, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		variants = append(variants, productVariantView{
			ID:       v.ID,
			Size:     v.Size,
			SKU:      v.SKU,
			Stock:    v.Stock,
			Price:    v.PriceOverride,
			IsActive: v.IsActive,
		})
	}
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		SKU:         p.SKU,
		Description: p.Description,
		RetailPrice: domain.RoundPrice(p.RetailAmount()),
		Stock:       p.Stock,
		HasVariants: p.HasVariants,
		Available:   p.Available,
		Variants:    variants,
	}
}
