package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendaro/storefront-service/internal/delivery/http/middleware"
	"github.com/vendaro/storefront-service/internal/domain"
)

// CatalogHandler serves the storefront's read side of the catalog. Writes go
// through the back office, not this API.
type CatalogHandler struct {
	catalog domain.CatalogRepository
}

func NewCatalogHandler(catalog domain.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	products, total, err := h.catalog.ListProducts(c.Context(), store.ID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	return c.JSON(fiber.Map{"products": views, "total": total, "limit": limit, "offset": offset})
}

func (h *CatalogHandler) GetBySlug(c *fiber.Ctx) error {
	store := middleware.StoreFromCtx(c)

	product, err := h.catalog.GetProductBySlug(c.Context(), store.ID, c.Params("slug"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toProductView(product))
}
