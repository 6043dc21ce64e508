package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vendaro/storefront-service/internal/delivery/http/middleware"
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/usecase"
)

type CartHandler struct {
	carts    *usecase.CartService
	buyers   domain.BuyerRepository
	validate *validator.Validate
}

func NewCartHandler(carts *usecase.CartService, buyers domain.BuyerRepository) *CartHandler {
	return &CartHandler{carts: carts, buyers: buyers, validate: validator.New()}
}

type addLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid4"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid4"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type mergeRequest struct {
	SourceCartID string `json:"source_cart_id" validate:"required,uuid4"`
}

func (h *CartHandler) identify(c *fiber.Ctx, store *domain.Store) (*domain.Cart, error) {
	return h.carts.Identify(c.Context(), store, buyerIDFromHeaders(c), sessionKeyFromHeaders(c))
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)
	cart, err := h.identify(c, store)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toCartView(cart))
}

func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req addLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product_id"})
	}
	var variantID *uuid.UUID
	if req.VariantID != nil {
		id, err := uuid.Parse(*req.VariantID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid variant_id"})
		}
		variantID = &id
	}

	cart, err := h.identify(c, store)
	if err != nil {
		return mapDomainError(c, err)
	}
	buyer := loadBuyer(c.Context(), h.buyers, buyerIDFromHeaders(c))

	line, err := h.carts.AddLine(c.Context(), store, cart, productID, variantID, req.Quantity, buyer)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCartLineView(line))
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	lineID, err := uuid.Parse(c.Params("lineID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid line id"})
	}
	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cart, err := h.identify(c, store)
	if err != nil {
		return mapDomainError(c, err)
	}
	if err := h.carts.UpdateQuantity(c.Context(), store, cart, lineID, req.Quantity); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "quantity updated"})
}

func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	lineID, err := uuid.Parse(c.Params("lineID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid line id"})
	}
	cart, err := h.identify(c, store)
	if err != nil {
		return mapDomainError(c, err)
	}
	if err := h.carts.RemoveLine(c.Context(), store, cart, lineID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "line removed"})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	cart, err := h.identify(c, store)
	if err != nil {
		return mapDomainError(c, err)
	}
	if err := h.carts.Clear(c.Context(), store, cart); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cart cleared"})
}

// Merge folds the pre-login session cart into the authenticated cart. The
// client sends the old cart id right after login.
func (h *CartHandler) Merge(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	userID := buyerIDFromHeaders(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	var req mergeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	sourceID, err := uuid.Parse(req.SourceCartID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid source_cart_id"})
	}

	target, err := h.carts.Identify(c.Context(), store, userID, nil)
	if err != nil {
		return mapDomainError(c, err)
	}
	if err := h.carts.Merge(c.Context(), store, target.ID, sourceID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "carts merged", "cart_id": target.ID})
}
