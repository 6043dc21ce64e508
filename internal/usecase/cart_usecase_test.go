package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaro/storefront-service/internal/domain"
)

func newCartFixture() (*CartService, *fakeCartRepo, *fakeCatalogRepo, *domain.Store) {
	catalog := newFakeCatalogRepo()
	carts := newFakeCartRepo(catalog)
	svc := NewCartService(carts, catalog, NewPricingResolver())
	return svc, carts, catalog, testStore()
}

func TestIdentifyCreatesCartOnce(t *testing.T) {
	svc, _, _, store := newCartFixture()
	userID := uuid.New()

	first, err := svc.Identify(context.Background(), store, &userID, nil)
	require.NoError(t, err)

	second, err := svc.Identify(context.Background(), store, &userID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestIdentifyConcurrentSingleWinner(t *testing.T) {
	svc, _, _, store := newCartFixture()
	userID := uuid.New()

	const n = 8
	ids := make([]uuid.UUID, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cart, err := svc.Identify(context.Background(), store, &userID, nil)
			errs[i] = err
			if cart != nil {
				ids[i] = cart.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}
	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i], "all callers must land on the same cart")
	}
}

func TestIdentifyAnonymousRequiresSessionKey(t *testing.T) {
	svc, _, _, store := newCartFixture()
	_, err := svc.Identify(context.Background(), store, nil, nil)
	assert.ErrorIs(t, err, domain.ErrCartOwnerMissing)

	empty := ""
	_, err = svc.Identify(context.Background(), store, nil, &empty)
	assert.ErrorIs(t, err, domain.ErrCartOwnerMissing)

	key := "sess-abc"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)
	assert.Equal(t, key, *cart.SessionKey)
}

func TestAddLineSnapshotsPrice(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)

	line, err := svc.AddLine(context.Background(), store, cart, product.ID, nil, 2, nil)
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 2, line.Quantity)
	assert.False(t, line.IsWholesale)
	assert.Equal(t, product.Name, line.ProductName)
}

func TestAddLineRepeatedIncrementsQuantity(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)

	_, err = svc.AddLine(context.Background(), store, cart, product.ID, nil, 2, nil)
	require.NoError(t, err)
	line, err := svc.AddLine(context.Background(), store, cart, product.ID, nil, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	reloaded, err := svc.carts.GetByID(context.Background(), store.ID, cart.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Lines, 1)
}

func TestAddLineInsufficientStockReportsAvailable(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 3)
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)

	_, err = svc.AddLine(context.Background(), store, cart, product.ID, nil, 5, nil)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
}

func TestAddLineUntrackedStockNeverBlocks(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 0)
	product.TrackStock = false
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)

	_, err = svc.AddLine(context.Background(), store, cart, product.ID, nil, 100, nil)
	assert.NoError(t, err)
}

func TestAddLineUnavailableProduct(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	product.Available = false
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)

	_, err = svc.AddLine(context.Background(), store, cart, product.ID, nil, 1, nil)
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestAddLineCrossTenantCart(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	catalog.put(product)

	otherStore := testStore()
	key := "sess-other"
	foreignCart, err := svc.Identify(context.Background(), otherStore, nil, &key)
	require.NoError(t, err)

	_, err = svc.AddLine(context.Background(), store, foreignCart, product.ID, nil, 1, nil)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func TestAddLineWholesaleSnapshot(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	catalog.put(product)
	buyer := &domain.Buyer{ID: uuid.New(), IsWholesale: true}
	cart, err := svc.Identify(context.Background(), store, &buyer.ID, nil)
	require.NoError(t, err)

	line, err := svc.AddLine(context.Background(), store, cart, product.ID, nil, 1, buyer)
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(8500)))
	assert.True(t, line.IsWholesale)
}

func TestUpdateQuantityKeepsPriceSnapshot(t *testing.T) {
	svc, carts, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)
	line, err := svc.AddLine(context.Background(), store, cart, product.ID, nil, 1, nil)
	require.NoError(t, err)

	// Price changes after the line was added.
	product.RetailPrice = decimal.NewFromInt(20000)
	catalog.put(product)

	require.NoError(t, svc.UpdateQuantity(context.Background(), store, cart, line.ID, 4))

	reloaded, err := carts.GetByID(context.Background(), store.ID, cart.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, 4, reloaded.Lines[0].Quantity)
	assert.True(t, reloaded.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10000)), "snapshot must not re-price")
}

func TestClosedCartRejectsMutations(t *testing.T) {
	svc, _, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 10)
	catalog.put(product)
	key := "sess-1"
	cart, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)
	line, err := svc.AddLine(context.Background(), store, cart, product.ID, nil, 1, nil)
	require.NoError(t, err)

	cart.IsActive = false

	_, err = svc.AddLine(context.Background(), store, cart, product.ID, nil, 1, nil)
	assert.ErrorIs(t, err, domain.ErrCartAlreadyConverted)
	err = svc.UpdateQuantity(context.Background(), store, cart, line.ID, 2)
	assert.ErrorIs(t, err, domain.ErrCartAlreadyConverted)
	err = svc.RemoveLine(context.Background(), store, cart, line.ID)
	assert.ErrorIs(t, err, domain.ErrCartAlreadyConverted)
	err = svc.Clear(context.Background(), store, cart)
	assert.ErrorIs(t, err, domain.ErrCartAlreadyConverted)
}

func TestMergeFoldsSourceIntoTarget(t *testing.T) {
	svc, carts, catalog, store := newCartFixture()
	product := testProduct(store.ID, 10000, 50)
	other := testProduct(store.ID, 5000, 50)
	other.Slug = "scarf"
	catalog.put(product)
	catalog.put(other)

	key := "sess-anon"
	anon, err := svc.Identify(context.Background(), store, nil, &key)
	require.NoError(t, err)
	_, err = svc.AddLine(context.Background(), store, anon, product.ID, nil, 2, nil)
	require.NoError(t, err)
	_, err = svc.AddLine(context.Background(), store, anon, other.ID, nil, 1, nil)
	require.NoError(t, err)

	userID := uuid.New()
	owned, err := svc.Identify(context.Background(), store, &userID, nil)
	require.NoError(t, err)
	_, err = svc.AddLine(context.Background(), store, owned, product.ID, nil, 1, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Merge(context.Background(), store, owned.ID, anon.ID))

	merged, err := carts.GetByID(context.Background(), store.ID, owned.ID)
	require.NoError(t, err)
	require.Len(t, merged.Lines, 2)
	assert.Equal(t, 3, merged.FindLine(product.ID, nil).Quantity)
	assert.Equal(t, 1, merged.FindLine(other.ID, nil).Quantity)

	// Source is gone; retrying the merge is a no-op.
	require.NoError(t, svc.Merge(context.Background(), store, owned.ID, anon.ID))
	_, err = carts.GetByID(context.Background(), store.ID, anon.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMergeSelfIsNoop(t *testing.T) {
	svc, _, _, store := newCartFixture()
	id := uuid.New()
	assert.NoError(t, svc.Merge(context.Background(), store, id, id))
}
