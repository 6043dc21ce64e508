package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/models"
)

// uniqueProductSlug slugifies the name and appends -2, -3, ... until the
// result is free within the store. Soft-deleted rows still hold their slug,
// so the scan runs unscoped.
func uniqueProductSlug(tx *gorm.DB, storeID uuid.UUID, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "item"
	}
	var existing []string
	err := tx.Model(&models.ProductModel{}).Unscoped().
		Where("store_id = ? AND (slug = ? OR slug LIKE ?)", storeID, base, base+"-%").
		Pluck("slug", &existing).Error
	if err != nil {
		return "", err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}
	if _, ok := taken[base]; !ok {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
}
