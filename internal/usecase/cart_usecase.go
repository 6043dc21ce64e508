package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/metrics"
)

// CartService owns the pre-purchase basket lifecycle: identification,
// line mutations, anonymous-to-authenticated merge, totals.
type CartService struct {
	carts   domain.CartRepository
	catalog domain.CatalogRepository
	pricing *PricingResolver
	Metrics *metrics.StorefrontMetrics
}

func NewCartService(carts domain.CartRepository, catalog domain.CatalogRepository, pricing *PricingResolver) *CartService {
	return &CartService{carts: carts, catalog: catalog, pricing: pricing}
}

// Identify resolves or creates the caller's active cart: by (store, user)
// for authenticated callers, by (store, session) otherwise. The get-or-create
// is race-safe: a concurrent create losing to the unique constraint rereads
// instead of producing a second active cart.
func (s *CartService) Identify(ctx context.Context, store *domain.Store, userID *uuid.UUID, sessionKey *string) (*domain.Cart, error) {
	lookup := func() (*domain.Cart, error) {
		if userID != nil {
			return s.carts.GetActiveByUser(ctx, store.ID, *userID)
		}
		if sessionKey == nil || *sessionKey == "" {
			return nil, domain.ErrCartOwnerMissing
		}
		return s.carts.GetActiveBySession(ctx, store.ID, *sessionKey)
	}

	cart, err := lookup()
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart = &domain.Cart{
		ID:         uuid.New(),
		StoreID:    store.ID,
		UserID:     userID,
		SessionKey: sessionKey,
		IsActive:   true,
	}
	if err := s.carts.Create(ctx, cart); err != nil {
		if errors.Is(err, domain.ErrDuplicateCart) {
			// Lost the race: the other identify already created it.
			return lookup()
		}
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// AddLine validates availability, variant consistency and stock, snapshots
// the price via the pricing resolver, and inserts or increments the line.
func (s *CartService) AddLine(ctx context.Context, store *domain.Store, cart *domain.Cart, productID uuid.UUID, variantID *uuid.UUID, quantity int, buyer *domain.Buyer) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrItemUnavailable)
	}
	if err := EnsureTenant(store, cart.StoreID); err != nil {
		return nil, err
	}
	if !cart.IsActive {
		return nil, domain.ErrCartAlreadyConverted
	}

	product, err := s.catalog.GetProduct(ctx, store.ID, productID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, domain.ErrItemUnavailable
	}
	item, err := domain.ResolveCatalogItem(product, variantID)
	if err != nil {
		return nil, err
	}

	unitPrice, isWholesale := s.pricing.PriceFor(store, item, buyer)
	line := &domain.CartLine{
		ID:          uuid.New(),
		CartID:      cart.ID,
		ProductID:   product.ID,
		VariantID:   item.VariantID(),
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		IsWholesale: isWholesale,
	}
	saved, err := s.carts.UpsertLine(ctx, store.ID, cart.ID, line, item.TracksStock())
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.RecordCartLineAdded(store.ID.String(), quantity)
	}
	slog.Info("cart line added",
		"store_id", store.ID,
		"cart_id", cart.ID,
		"product_id", product.ID,
		"quantity", saved.Quantity,
		"wholesale", isWholesale,
	)
	return saved, nil
}

// UpdateQuantity re-validates stock for the new quantity. The snapshotted
// price is deliberately left alone (sticky once set).
func (s *CartService) UpdateQuantity(ctx context.Context, store *domain.Store, cart *domain.Cart, lineID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrItemUnavailable)
	}
	if err := EnsureTenant(store, cart.StoreID); err != nil {
		return err
	}
	if !cart.IsActive {
		return domain.ErrCartAlreadyConverted
	}
	return s.carts.UpdateLineQuantity(ctx, store.ID, cart.ID, lineID, quantity)
}

func (s *CartService) RemoveLine(ctx context.Context, store *domain.Store, cart *domain.Cart, lineID uuid.UUID) error {
	if err := EnsureTenant(store, cart.StoreID); err != nil {
		return err
	}
	if !cart.IsActive {
		return domain.ErrCartAlreadyConverted
	}
	return s.carts.RemoveLine(ctx, store.ID, cart.ID, lineID)
}

func (s *CartService) Clear(ctx context.Context, store *domain.Store, cart *domain.Cart) error {
	if err := EnsureTenant(store, cart.StoreID); err != nil {
		return err
	}
	if !cart.IsActive {
		return domain.ErrCartAlreadyConverted
	}
	return s.carts.Clear(ctx, store.ID, cart.ID)
}

// Merge folds an anonymous cart into the authenticated one after login.
// Safe to retry: once the source is gone the call is a no-op.
func (s *CartService) Merge(ctx context.Context, store *domain.Store, targetID, sourceID uuid.UUID) error {
	if targetID == sourceID {
		return nil
	}
	if err := s.carts.Merge(ctx, store.ID, targetID, sourceID); err != nil {
		return fmt.Errorf("merge cart %s into %s: %w", sourceID, targetID, err)
	}
	slog.Info("carts merged", "store_id", store.ID, "target", targetID, "source", sourceID)
	return nil
}

// Total recomputes the cart total from snapshotted line prices on demand.
func (s *CartService) Total(ctx context.Context, store *domain.Store, cartID uuid.UUID) (decimal.Decimal, error) {
	cart, err := s.carts.GetByID(ctx, store.ID, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Total(), nil
}
