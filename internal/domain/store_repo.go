package domain

import (
	"context"

	"github.com/google/uuid"
)

type StoreRepository interface {
	// GetByDomain returns the single active store for a domain,
	// ErrTenantNotFound when none matches.
	GetByDomain(ctx context.Context, domain string) (*Store, error)
	// FirstActive is the deployment fallback for local/test environments.
	FirstActive(ctx context.Context) (*Store, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)
	Create(ctx context.Context, store *Store) error
	UpdateSettings(ctx context.Context, storeID uuid.UUID, settings StoreSettings) error
}
