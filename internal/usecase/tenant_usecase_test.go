package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaro/storefront-service/internal/domain"
)

// wrappingStoreRepo decorates the fake with error wrapping, the way a real
// repository annotates its failures.
type wrappingStoreRepo struct {
	*fakeStoreRepo
}

func (w *wrappingStoreRepo) GetByDomain(ctx context.Context, host string) (*domain.Store, error) {
	store, err := w.fakeStoreRepo.GetByDomain(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("store by domain %q: %w", host, err)
	}
	return store, nil
}

func TestResolveByDomain(t *testing.T) {
	stores := newFakeStoreRepo()
	store := testStore()
	stores.put(store)
	registry := NewTenantRegistry(stores, false)

	resolved, err := registry.Resolve(context.Background(), "shop.example.com")
	require.NoError(t, err)
	assert.Equal(t, store.ID, resolved.ID)
}

func TestResolveStripsPort(t *testing.T) {
	stores := newFakeStoreRepo()
	store := testStore()
	stores.put(store)
	registry := NewTenantRegistry(stores, false)

	resolved, err := registry.Resolve(context.Background(), "shop.example.com:8080")
	require.NoError(t, err)
	assert.Equal(t, store.ID, resolved.ID)
}

func TestResolveUnknownHost(t *testing.T) {
	stores := newFakeStoreRepo()
	stores.put(testStore())
	registry := NewTenantRegistry(stores, false)

	_, err := registry.Resolve(context.Background(), "unknown.example.com")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestResolveFallback(t *testing.T) {
	stores := newFakeStoreRepo()
	store := testStore()
	stores.put(store)
	registry := NewTenantRegistry(stores, true)

	resolved, err := registry.Resolve(context.Background(), "unknown.example.com")
	require.NoError(t, err)
	assert.Equal(t, store.ID, resolved.ID)
}

func TestResolveFallbackOnWrappedMiss(t *testing.T) {
	stores := newFakeStoreRepo()
	store := testStore()
	stores.put(store)
	registry := NewTenantRegistry(&wrappingStoreRepo{stores}, true)

	// A wrapped not-found must still be recognized as a miss, both for the
	// fallback path and for the bare sentinel returned without fallback.
	resolved, err := registry.Resolve(context.Background(), "unknown.example.com")
	require.NoError(t, err)
	assert.Equal(t, store.ID, resolved.ID)

	strict := NewTenantRegistry(&wrappingStoreRepo{stores}, false)
	_, err = strict.Resolve(context.Background(), "unknown.example.com")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestResolveInactiveStoreIsInvisible(t *testing.T) {
	stores := newFakeStoreRepo()
	store := testStore()
	store.IsActive = false
	stores.put(store)
	registry := NewTenantRegistry(stores, false)

	_, err := registry.Resolve(context.Background(), store.Domain)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestResolveEmptyHost(t *testing.T) {
	registry := NewTenantRegistry(newFakeStoreRepo(), true)
	_, err := registry.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestEnsureTenant(t *testing.T) {
	store := testStore()
	assert.NoError(t, EnsureTenant(store, store.ID))
	assert.ErrorIs(t, EnsureTenant(store, uuid.New()), domain.ErrCrossTenantAccess)
}
