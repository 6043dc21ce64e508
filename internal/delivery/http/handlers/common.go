package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vendaro/storefront-service/internal/domain"
)

// Identity headers are set by the upstream auth proxy. X-Buyer-ID carries the
// authenticated buyer, X-Session-Key the anonymous session.
const (
	headerBuyerID    = "X-Buyer-ID"
	headerSessionKey = "X-Session-Key"
)

func buyerIDFromHeaders(c *fiber.Ctx) *uuid.UUID {
	raw := c.Get(headerBuyerID)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func sessionKeyFromHeaders(c *fiber.Ctx) *string {
	raw := c.Get(headerSessionKey)
	if raw == "" {
		return nil
	}
	return &raw
}

// loadBuyer resolves the buyer behind X-Buyer-ID. An unknown id is treated as
// anonymous rather than an error: the header is advisory, pricing just falls
// back to retail.
func loadBuyer(ctx context.Context, buyers domain.BuyerRepository, id *uuid.UUID) *domain.Buyer {
	if id == nil {
		return nil
	}
	buyer, err := buyers.GetByID(ctx, *id)
	if err != nil {
		return nil
	}
	return buyer
}

// mapDomainError translates domain errors to HTTP responses. Cross-tenant
// access deliberately reads as a plain 404 so probing ids across stores
// reveals nothing.
func mapDomainError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "insufficient stock",
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	}
	var amountErr *domain.OrderAmountError
	if errors.As(err, &amountErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": amountErr.Error(),
			"total": amountErr.Total,
			"limit": amountErr.Limit,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrCrossTenantAccess):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, domain.ErrCartAlreadyConverted),
		errors.Is(err, domain.ErrStockExhausted),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrVariantRequired),
		errors.Is(err, domain.ErrVariantNotAllowed),
		errors.Is(err, domain.ErrVariantMismatch),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrCartOwnerMissing),
		errors.Is(err, domain.ErrNonPositivePrice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
