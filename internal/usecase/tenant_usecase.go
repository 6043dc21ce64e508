package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/vendaro/storefront-service/internal/domain"
)

// TenantRegistry resolves an inbound host to the store that owns it. All
// other usecases take the resolved store explicitly; there is no ambient
// tenant state anywhere in the core.
type TenantRegistry struct {
	stores domain.StoreRepository
	// allowFallback routes unknown hosts to the first active store. This
	// exists for local and test deployments only and must stay off in
	// production config.
	allowFallback bool
}

func NewTenantRegistry(stores domain.StoreRepository, allowFallback bool) *TenantRegistry {
	return &TenantRegistry{stores: stores, allowFallback: allowFallback}
}

func (r *TenantRegistry) Resolve(ctx context.Context, host string) (*domain.Store, error) {
	domainName := stripPort(host)
	if domainName == "" {
		return nil, domain.ErrTenantNotFound
	}

	store, err := r.stores.GetByDomain(ctx, domainName)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, domain.ErrTenantNotFound) {
		return nil, fmt.Errorf("resolve tenant %q: %w", domainName, err)
	}

	if r.allowFallback {
		slog.Warn("tenant fallback", "host", domainName)
		return r.stores.FirstActive(ctx)
	}
	return nil, domain.ErrTenantNotFound
}

// EnsureTenant rejects any entity whose store differs from the request
// tenant, even when the caller supplied a valid-looking id.
func EnsureTenant(store *domain.Store, entityStoreID uuid.UUID) error {
	if store.ID != entityStoreID {
		return domain.ErrCrossTenantAccess
	}
	return nil
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.TrimSpace(host)
}
