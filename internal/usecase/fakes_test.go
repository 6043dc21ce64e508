package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendaro/storefront-service/internal/domain"
)

// In-memory fakes mirroring the repository contracts, including the
// constraint-driven errors the real Postgres layer produces.

type fakeCatalogRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (f *fakeCatalogRepo) put(p *domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[p.ID] = p
}

func (f *fakeCatalogRepo) GetProduct(_ context.Context, storeID, productID uuid.UUID) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.Variants = append([]domain.ProductVariant(nil), p.Variants...)
	return &cp, nil
}

func (f *fakeCatalogRepo) GetProductBySlug(_ context.Context, storeID uuid.UUID, slug string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.StoreID == storeID && p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalogRepo) ListProducts(_ context.Context, storeID uuid.UUID, limit, offset int) ([]*domain.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Product
	for _, p := range f.products {
		if p.StoreID == storeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCatalogRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	f.put(p)
	return nil
}

func (f *fakeCatalogRepo) UpdateProduct(_ context.Context, p *domain.Product) error {
	f.put(p)
	return nil
}

func (f *fakeCatalogRepo) SoftDeleteProduct(_ context.Context, storeID, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok || p.StoreID != storeID {
		return domain.ErrNotFound
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeCatalogRepo) RestoreProduct(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (f *fakeCatalogRepo) HardDeleteProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	return f.SoftDeleteProduct(ctx, storeID, productID)
}

func (f *fakeCatalogRepo) IncrementSalesCount(_ context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.SalesCount += quantity
	if variantID != nil {
		if v := p.VariantByID(*variantID); v != nil {
			v.SalesCount += quantity
		}
	}
	return nil
}

// stock returns the live counter for a (product, variant) pair. Callers hold
// no lock; this is only used inside the fakes' own locked sections via
// stockLocked.
func (f *fakeCatalogRepo) stockLocked(productID uuid.UUID, variantID *uuid.UUID) (int, bool, bool) {
	p, ok := f.products[productID]
	if !ok {
		return 0, false, false
	}
	if variantID != nil {
		v := p.VariantByID(*variantID)
		if v == nil {
			return 0, false, false
		}
		return v.Stock, p.TrackStock, true
	}
	return p.Stock, p.TrackStock, true
}

func (f *fakeCatalogRepo) decrementLocked(productID uuid.UUID, variantID *uuid.UUID, qty int) error {
	stock, track, ok := f.stockLocked(productID, variantID)
	if !ok {
		return nil
	}
	if !track {
		return nil
	}
	if stock < qty {
		return domain.ErrStockExhausted
	}
	p := f.products[productID]
	if variantID != nil {
		p.VariantByID(*variantID).Stock -= qty
	} else {
		p.Stock -= qty
	}
	return nil
}

type fakeCartRepo struct {
	mu      sync.Mutex
	carts   map[uuid.UUID]*domain.Cart
	catalog *fakeCatalogRepo
}

func newFakeCartRepo(catalog *fakeCatalogRepo) *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*domain.Cart), catalog: catalog}
}

func copyCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Lines = append([]domain.CartLine(nil), c.Lines...)
	return &cp
}

func (f *fakeCartRepo) GetByID(_ context.Context, storeID, cartID uuid.UUID) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[cartID]
	if !ok || c.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return copyCart(c), nil
}

func (f *fakeCartRepo) GetActiveByUser(_ context.Context, storeID, userID uuid.UUID) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.StoreID == storeID && c.IsActive && c.UserID != nil && *c.UserID == userID {
			return copyCart(c), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCartRepo) GetActiveBySession(_ context.Context, storeID uuid.UUID, sessionKey string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.StoreID == storeID && c.IsActive && c.SessionKey != nil && *c.SessionKey == sessionKey {
			return copyCart(c), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCartRepo) Create(_ context.Context, cart *domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart.UserID != nil {
		for _, c := range f.carts {
			if c.StoreID == cart.StoreID && c.IsActive && c.UserID != nil && *c.UserID == *cart.UserID {
				return domain.ErrDuplicateCart
			}
		}
	}
	f.carts[cart.ID] = copyCart(cart)
	return nil
}

func (f *fakeCartRepo) UpsertLine(_ context.Context, storeID, cartID uuid.UUID, line *domain.CartLine, trackStock bool) (*domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog.mu.Lock()
	defer f.catalog.mu.Unlock()

	cart, ok := f.carts[cartID]
	if !ok || cart.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	if !cart.IsActive {
		return nil, domain.ErrCartAlreadyConverted
	}

	existing := cart.FindLine(line.ProductID, line.VariantID)
	quantity := line.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}
	if trackStock {
		stock, track, ok := f.catalog.stockLocked(line.ProductID, line.VariantID)
		if ok && track && quantity > stock {
			return nil, &domain.InsufficientStockError{Available: stock, Requested: quantity}
		}
	}
	if existing != nil {
		existing.Quantity = quantity
		cp := *existing
		return &cp, nil
	}
	cart.Lines = append(cart.Lines, *line)
	cp := *line
	return &cp, nil
}

func (f *fakeCartRepo) UpdateLineQuantity(_ context.Context, storeID, cartID, lineID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog.mu.Lock()
	defer f.catalog.mu.Unlock()

	cart, ok := f.carts[cartID]
	if !ok || cart.StoreID != storeID {
		return domain.ErrNotFound
	}
	for i := range cart.Lines {
		l := &cart.Lines[i]
		if l.ID != lineID {
			continue
		}
		stock, track, ok := f.catalog.stockLocked(l.ProductID, l.VariantID)
		if ok && track && quantity > stock {
			return &domain.InsufficientStockError{Available: stock, Requested: quantity}
		}
		l.Quantity = quantity
		return nil
	}
	return domain.ErrNotFound
}

func (f *fakeCartRepo) RemoveLine(_ context.Context, storeID, cartID, lineID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok || cart.StoreID != storeID {
		return domain.ErrNotFound
	}
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeCartRepo) Clear(_ context.Context, storeID, cartID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[cartID]
	if !ok || cart.StoreID != storeID {
		return domain.ErrNotFound
	}
	cart.Lines = nil
	return nil
}

func (f *fakeCartRepo) Merge(_ context.Context, storeID, targetID, sourceID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	source, ok := f.carts[sourceID]
	if !ok || source.StoreID != storeID {
		return nil
	}
	target, ok := f.carts[targetID]
	if !ok || target.StoreID != storeID {
		return domain.ErrNotFound
	}
	for i := range source.Lines {
		src := &source.Lines[i]
		if existing := target.FindLine(src.ProductID, src.VariantID); existing != nil {
			existing.Quantity += src.Quantity
			continue
		}
		moved := *src
		moved.CartID = targetID
		target.Lines = append(target.Lines, moved)
	}
	delete(f.carts, sourceID)
	return nil
}

type fakeOrderRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.Order
	carts   *fakeCartRepo
	catalog *fakeCatalogRepo
	// beforeConvert, when set, runs before the conversion takes its locks,
	// standing in for a writer that commits just ahead of the cart flip.
	beforeConvert func()
}

func newFakeOrderRepo(carts *fakeCartRepo, catalog *fakeCatalogRepo) *fakeOrderRepo {
	return &fakeOrderRepo{byID: make(map[uuid.UUID]*domain.Order), carts: carts, catalog: catalog}
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp
}

func (f *fakeOrderRepo) CreateFromCart(_ context.Context, storeID, cartID uuid.UUID, build func(cart *domain.Cart) (*domain.Order, error)) (*domain.Order, error) {
	if f.beforeConvert != nil {
		hook := f.beforeConvert
		f.beforeConvert = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts.mu.Lock()
	defer f.carts.mu.Unlock()
	f.catalog.mu.Lock()
	defer f.catalog.mu.Unlock()

	cart, ok := f.carts.carts[cartID]
	if !ok || cart.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	if !cart.IsActive {
		return nil, domain.ErrCartAlreadyConverted
	}

	// The order is assembled from the lines as they stand at conversion
	// time, matching the in-transaction re-read of the real repository.
	order, err := build(copyCart(cart))
	if err != nil {
		return nil, err
	}
	for _, existing := range f.byID {
		if existing.OrderNumber == order.OrderNumber {
			return nil, domain.ErrDuplicateOrderNumber
		}
	}
	// Validate every decrement before applying any, mimicking rollback.
	for _, line := range order.Lines {
		if line.ProductID == nil {
			continue
		}
		stock, track, ok := f.catalog.stockLocked(*line.ProductID, line.VariantID)
		if ok && track && stock < line.Quantity {
			return nil, domain.ErrStockExhausted
		}
	}
	for _, line := range order.Lines {
		if line.ProductID == nil {
			continue
		}
		if err := f.catalog.decrementLocked(*line.ProductID, line.VariantID, line.Quantity); err != nil {
			return nil, err
		}
	}
	cart.IsActive = false
	cart.Lines = nil
	f.byID[order.ID] = copyOrder(order)
	return order, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, storeID, orderID uuid.UUID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[orderID]
	if !ok || o.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return copyOrder(o), nil
}

func (f *fakeOrderRepo) GetByNumber(_ context.Context, storeID uuid.UUID, orderNumber string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byID {
		if o.StoreID == storeID && o.OrderNumber == orderNumber {
			return copyOrder(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, storeID, userID uuid.UUID, limit, offset int) ([]*domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.byID {
		if o.StoreID == storeID && o.UserID != nil && *o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[order.ID]
	if !ok || o.StoreID != order.StoreID {
		return domain.ErrNotFound
	}
	o.Status = order.Status
	o.TrackingNumber = order.TrackingNumber
	o.AdminNote = order.AdminNote
	o.PaidAt = order.PaidAt
	o.ShippedAt = order.ShippedAt
	o.DeliveredAt = order.DeliveredAt
	return nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[uuid.UUID]*domain.Store
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[uuid.UUID]*domain.Store)}
}

func (f *fakeStoreRepo) put(s *domain.Store) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores[s.ID] = s
}

func (f *fakeStoreRepo) GetByDomain(_ context.Context, host string) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.stores {
		if s.Domain == host && s.IsActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func (f *fakeStoreRepo) FirstActive(_ context.Context) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.stores {
		if s.IsActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStoreRepo) Create(_ context.Context, store *domain.Store) error {
	f.put(store)
	return nil
}

func (f *fakeStoreRepo) UpdateSettings(_ context.Context, storeID uuid.UUID, settings domain.StoreSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[storeID]
	if !ok {
		return domain.ErrTenantNotFound
	}
	s.Settings = settings
	return nil
}

type fakeOrderEvents struct {
	mu      sync.Mutex
	created []domain.OrderSnapshot
	changed []string
}

func (f *fakeOrderEvents) OrderCreated(snapshot domain.OrderSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, snapshot)
	return nil
}

func (f *fakeOrderEvents) OrderStatusChanged(orderNumber string, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, orderNumber+":"+string(status))
	return nil
}

// Shared test fixtures.

func testStore() *domain.Store {
	return &domain.Store{
		ID:                       uuid.New(),
		Domain:                   "shop.example.com",
		Name:                     "Example Shop",
		Slug:                     "example-shop",
		Currency:                 "RUB",
		EnableWholesale:          true,
		WholesaleDiscountPercent: decimal.NewFromInt(15),
		IsActive:                 true,
	}
}

func testProduct(storeID uuid.UUID, price int64, stock int) *domain.Product {
	return &domain.Product{
		ID:          uuid.New(),
		StoreID:     storeID,
		Name:        "Wool Coat",
		Slug:        "wool-coat",
		RetailPrice: decimal.NewFromInt(price),
		Stock:       stock,
		TrackStock:  true,
		Available:   true,
	}
}

func sequenceNumbers(numbers ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n := numbers[i%len(numbers)]
		i++
		return n
	}
}
