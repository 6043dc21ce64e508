package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vendaro/storefront-service/internal/delivery/http/middleware"
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/usecase"
)

type OrderHandler struct {
	orders   *usecase.OrderService
	carts    *usecase.CartService
	buyers   domain.BuyerRepository
	validate *validator.Validate
}

func NewOrderHandler(orders *usecase.OrderService, carts *usecase.CartService, buyers domain.BuyerRepository) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts, buyers: buyers, validate: validator.New()}
}

type checkoutRequest struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=32"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"max=20"`
	Country      string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	CustomerNote string `json:"customer_note" validate:"max=1000"`
}

type shipRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"max=100"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Checkout converts the caller's active cart into an order. Guest checkout is
// allowed: without X-Buyer-ID the order is created unattached, identified by
// its number only.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cart, err := h.carts.Identify(c.Context(), store, buyerIDFromHeaders(c), sessionKeyFromHeaders(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	buyer := loadBuyer(c.Context(), h.buyers, buyerIDFromHeaders(c))

	details := domain.BuyerDetails{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		CustomerNote: req.CustomerNote,
	}
	order, err := h.orders.CreateFromCart(c.Context(), store, cart.ID, buyer, details)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderView(order))
}

func (h *OrderHandler) GetByNumber(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	order, err := h.orders.GetByNumber(c.Context(), store, c.Params("number"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrderView(order))
}

func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	userID := buyerIDFromHeaders(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	orders, total, err := h.orders.ListByUser(c.Context(), store, *userID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return c.JSON(fiber.Map{"orders": views, "total": total, "limit": limit, "offset": offset})
}

func (h *OrderHandler) MarkPaid(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)
	order, err := h.orders.MarkPaid(c.Context(), store, c.Params("number"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrderView(order))
}

func (h *OrderHandler) MarkShipped(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req shipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	order, err := h.orders.MarkShipped(c.Context(), store, c.Params("number"), req.TrackingNumber)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrderView(order))
}

func (h *OrderHandler) MarkDelivered(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)
	order, err := h.orders.MarkDelivered(c.Context(), store, c.Params("number"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrderView(order))
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	var req cancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if err := h.validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	order, err := h.orders.Cancel(c.Context(), store, c.Params("number"), req.Reason)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toOrderView(order))
}
