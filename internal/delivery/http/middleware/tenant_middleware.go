package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/usecase"
)

const storeLocalsKey = "store"

// ResolveTenant maps the request host to its store and stashes it in the
// request context. Unknown hosts get a 404 before any handler runs.
func ResolveTenant(tenants *usecase.TenantRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := tenants.Resolve(c.Context(), c.Hostname())
		if err != nil {
			if errors.Is(err, domain.ErrTenantNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "store not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
		c.Locals(storeLocalsKey, store)
		return c.Next()
	}
}

// StoreFromCtx returns the store set by ResolveTenant, nil on routes that
// skipped the middleware.
func StoreFromCtx(c *fiber.Ctx) *domain.Store {
	store, _ := c.Locals(storeLocalsKey).(*domain.Store)
	return store
}
