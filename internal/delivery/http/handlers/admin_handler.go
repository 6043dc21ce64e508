package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendaro/storefront-service/internal/delivery/http/middleware"
	"github.com/vendaro/storefront-service/internal/domain"
)

// AdminHandler is the back-office surface: catalog writes, store settings,
// buyer registration. The gateway restricts who reaches these routes.
type AdminHandler struct {
	catalog  domain.CatalogRepository
	stores   domain.StoreRepository
	buyers   domain.BuyerRepository
	validate *validator.Validate
}

func NewAdminHandler(catalog domain.CatalogRepository, stores domain.StoreRepository, buyers domain.BuyerRepository) *AdminHandler {
	return &AdminHandler{catalog: catalog, stores: stores, buyers: buyers, validate: validator.New()}
}

type variantRequest struct {
	Size                   string           `json:"size" validate:"required,max=50"`
	SKU                    string           `json:"sku" validate:"max=100"`
	Stock                  int              `json:"stock" validate:"min=0"`
	PriceOverride          *decimal.Decimal `json:"price_override"`
	WholesalePriceOverride *decimal.Decimal `json:"wholesale_price_override"`
	IsActive               *bool            `json:"is_active"`
}

type productRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	SKU            string           `json:"sku" validate:"max=100"`
	Description    string           `json:"description"`
	RetailPrice    decimal.Decimal  `json:"retail_price" validate:"required"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	DiscountPrice  *decimal.Decimal `json:"discount_price"`
	Stock          int              `json:"stock" validate:"min=0"`
	TrackStock     *bool            `json:"track_stock"`
	Available      *bool            `json:"available"`
	Variants       []variantRequest `json:"variants" validate:"dive"`
}

func (r *productRequest) toDomain(storeID uuid.UUID) *domain.Product {
	p := &domain.Product{
		ID:             uuid.New(),
		StoreID:        storeID,
		Name:           r.Name,
		SKU:            r.SKU,
		Description:    r.Description,
		RetailPrice:    r.RetailPrice,
		WholesalePrice: r.WholesalePrice,
		DiscountPrice:  r.DiscountPrice,
		Stock:          r.Stock,
		TrackStock:     true,
		Available:      true,
		HasVariants:    len(r.Variants) > 0,
	}
	if r.TrackStock != nil {
		p.TrackStock = *r.TrackStock
	}
	if r.Available != nil {
		p.Available = *r.Available
	}
	for _, v := range r.Variants {
		variant := domain.ProductVariant{
			ID:                     uuid.New(),
			ProductID:              p.ID,
			Size:                   v.Size,
			SKU:                    v.SKU,
			Stock:                  v.Stock,
			PriceOverride:          v.PriceOverride,
			WholesalePriceOverride: v.WholesalePriceOverride,
			IsActive:               true,
		}
		if v.IsActive != nil {
			variant.IsActive = *v.IsActive
		}
		p.Variants = append(p.Variants, variant)
	}
	return p
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product := req.toDomain(store.ID)
	if err := product.ValidatePricing(); err != nil {
		return mapDomainError(c, err)
	}
	if err := h.catalog.CreateProduct(c.Context(), product); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductView(product))
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := h.catalog.GetProduct(c.Context(), store.ID, productID)
	if err != nil {
		return mapDomainError(c, err)
	}
	updated := req.toDomain(store.ID)
	if err := updated.ValidatePricing(); err != nil {
		return mapDomainError(c, err)
	}
	updated.ID = existing.ID
	// Slug is assigned on first insert and never rewritten.
	updated.Slug = existing.Slug
	for i := range updated.Variants {
		updated.Variants[i].ProductID = existing.ID
		if v := findVariantBySize(existing, updated.Variants[i].Size); v != nil {
			updated.Variants[i].ID = v.ID
		}
	}
	if err := h.catalog.UpdateProduct(c.Context(), updated); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toProductView(updated))
}

func findVariantBySize(p *domain.Product, size string) *domain.ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].Size == size {
			return &p.Variants[i]
		}
	}
	return nil
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if c.QueryBool("hard") {
		if err := h.catalog.HardDeleteProduct(c.Context(), store.ID, productID); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "product deleted permanently"})
	}
	if err := h.catalog.SoftDeleteProduct(c.Context(), store.ID, productID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

func (h *AdminHandler) RestoreProduct(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if err := h.catalog.RestoreProduct(c.Context(), store.ID, productID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product restored"})
}

type settingsRequest struct {
	EnableFreeShipping     bool            `json:"enable_free_shipping"`
	FreeShippingThreshold  decimal.Decimal `json:"free_shipping_threshold"`
	ShippingCost           decimal.Decimal `json:"shipping_cost"`
	TaxRate                decimal.Decimal `json:"tax_rate"`
	TaxIncluded            bool            `json:"tax_included"`
	MinOrderAmount         decimal.Decimal `json:"min_order_amount"`
	MaxOrderAmount         decimal.Decimal `json:"max_order_amount"`
	OrderNotificationEmail string          `json:"order_notification_email" validate:"omitempty,email"`
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	settings := domain.StoreSettings{
		EnableFreeShipping:     req.EnableFreeShipping,
		FreeShippingThreshold:  req.FreeShippingThreshold,
		ShippingCost:           req.ShippingCost,
		TaxRate:                req.TaxRate,
		TaxIncluded:            req.TaxIncluded,
		MinOrderAmount:         req.MinOrderAmount,
		MaxOrderAmount:         req.MaxOrderAmount,
		OrderNotificationEmail: req.OrderNotificationEmail,
	}
	if err := h.stores.UpdateSettings(c.Context(), store.ID, settings); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "settings updated"})
}

type buyerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name" validate:"max=100"`
	LastName    string `json:"last_name" validate:"max=100"`
	IsWholesale bool   `json:"is_wholesale"`
	BindToStore bool   `json:"bind_to_store"`
}

// CreateBuyer registers a buyer record, optionally bound to the current
// store as their wholesale home.
func (h *AdminHandler) CreateBuyer(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req buyerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if _, err := h.buyers.GetByEmail(c.Context(), req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "buyer already exists"})
	}

	buyer := &domain.Buyer{
		ID:          uuid.New(),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		IsWholesale: req.IsWholesale,
	}
	if req.BindToStore {
		id := store.ID
		buyer.StoreID = &id
	}
	if err := h.buyers.Create(c.Context(), buyer); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           buyer.ID,
		"email":        buyer.Email,
		"is_wholesale": buyer.IsWholesale,
	})
}
