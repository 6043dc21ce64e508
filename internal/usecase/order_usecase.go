package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vendaro/storefront-service/internal/domain"
	"github.com/vendaro/storefront-service/internal/infrastructure/metrics"
)

// OrderService converts validated carts into immutable orders and drives the
// order status machine afterwards.
type OrderService struct {
	orders      domain.OrderRepository
	catalog     domain.CatalogRepository
	events      domain.OrderEvents
	orderNumber func() string
	Metrics     *metrics.StorefrontMetrics
}

func NewOrderService(
	orders domain.OrderRepository,
	catalog domain.CatalogRepository,
	events domain.OrderEvents,
	orderNumber func() string,
) *OrderService {
	return &OrderService{
		orders:      orders,
		catalog:     catalog,
		events:      events,
		orderNumber: orderNumber,
	}
}

// CreateFromCart materializes an order from the cart in one atomic unit:
// subtotal from snapshotted line prices, shipping/tax resolved fresh from
// store settings, min/max order check, order numbering, line denormalization,
// stock decrement and cart closure. Stock is re-validated at this final step,
// not trusted from cart-time checks. The order is assembled from the lines
// the repository re-reads after deactivating the cart, so a line committed
// by a concurrent add is included rather than lost.
func (s *OrderService) CreateFromCart(ctx context.Context, store *domain.Store, cartID uuid.UUID, buyer *domain.Buyer, details domain.BuyerDetails) (*domain.Order, error) {
	start := time.Now()

	var userID *uuid.UUID
	isWholesale := false
	if buyer != nil {
		id := buyer.ID
		userID = &id
		isWholesale = buyer.WholesaleEligible(store)
	}

	// build runs inside the conversion transaction; an error rolls the
	// deactivation back and leaves the cart open.
	build := func(cart *domain.Cart) (*domain.Order, error) {
		if len(cart.Lines) == 0 {
			return nil, domain.ErrEmptyCart
		}

		subtotal := cart.Total()
		shipping := store.Settings.ShippingFor(subtotal)
		tax := store.Settings.TaxFor(subtotal)
		discount := decimal.Zero
		total := domain.CalculateTotal(subtotal, shipping, tax, discount)

		if total.LessThan(store.Settings.MinOrderAmount) {
			return nil, &domain.OrderAmountError{Total: total, Limit: store.Settings.MinOrderAmount}
		}
		if store.Settings.MaxOrderAmount.IsPositive() && total.GreaterThan(store.Settings.MaxOrderAmount) {
			return nil, &domain.OrderAmountError{Total: total, Limit: store.Settings.MaxOrderAmount, Above: true}
		}

		return &domain.Order{
			ID:           uuid.New(),
			StoreID:      store.ID,
			OrderNumber:  s.orderNumber(),
			UserID:       userID,
			Status:       domain.StatusNew,
			Details:      details,
			Subtotal:     subtotal,
			ShippingCost: shipping,
			Tax:          tax,
			Discount:     discount,
			Total:        total,
			IsWholesale:  isWholesale,
			Lines:        orderLinesFromCart(cart),
		}, nil
	}

	order, err := s.orders.CreateFromCart(ctx, store.ID, cartID, build)
	if errors.Is(err, domain.ErrDuplicateOrderNumber) {
		order, err = s.orders.CreateFromCart(ctx, store.ID, cartID, build)
	}
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.RecordOrderError(store.ID.String(), errorKind(err))
		}
		return nil, err
	}

	s.afterCreate(ctx, store, order)
	if s.Metrics != nil {
		s.Metrics.RecordOrderCreated(store.ID.String(), store.Currency, order.Total.InexactFloat64())
		s.Metrics.RecordCheckoutDuration(store.ID.String(), time.Since(start).Seconds())
	}
	slog.Info("order created",
		"store_id", store.ID,
		"order_number", order.OrderNumber,
		"total", order.Total,
		"lines", len(order.Lines),
		"wholesale", isWholesale,
	)
	return order, nil
}

// afterCreate runs the post-commit side effects: notification event and
// sales counters. Both are best-effort and never unwind the order.
func (s *OrderService) afterCreate(ctx context.Context, store *domain.Store, order *domain.Order) {
	if s.events != nil {
		if err := s.events.OrderCreated(order.Snapshot(store.Currency)); err != nil {
			slog.Error("publish order created", "order_number", order.OrderNumber, "error", err)
		}
	}
	for _, line := range order.Lines {
		if line.ProductID == nil {
			continue
		}
		if err := s.catalog.IncrementSalesCount(ctx, *line.ProductID, line.VariantID, line.Quantity); err != nil {
			slog.Error("increment sales count", "product_id", *line.ProductID, "error", err)
		}
	}
}

func orderLinesFromCart(cart *domain.Cart) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, cl := range cart.Lines {
		productID := cl.ProductID
		lines = append(lines, domain.OrderLine{
			ID:          uuid.New(),
			ProductID:   &productID,
			VariantID:   cl.VariantID,
			ProductName: cl.ProductName,
			Quantity:    cl.Quantity,
			UnitPrice:   cl.UnitPrice,
			IsWholesale: cl.IsWholesale,
		})
	}
	return lines
}

func (s *OrderService) MarkPaid(ctx context.Context, store *domain.Store, orderNumber string) (*domain.Order, error) {
	return s.transition(ctx, store, orderNumber, domain.StatusPaid, func(o *domain.Order, now time.Time) {
		o.PaidAt = &now
	})
}

func (s *OrderService) MarkShipped(ctx context.Context, store *domain.Store, orderNumber, trackingNumber string) (*domain.Order, error) {
	return s.transition(ctx, store, orderNumber, domain.StatusShipped, func(o *domain.Order, now time.Time) {
		o.ShippedAt = &now
		if trackingNumber != "" {
			o.TrackingNumber = trackingNumber
		}
	})
}

func (s *OrderService) MarkDelivered(ctx context.Context, store *domain.Store, orderNumber string) (*domain.Order, error) {
	return s.transition(ctx, store, orderNumber, domain.StatusDelivered, func(o *domain.Order, now time.Time) {
		o.DeliveredAt = &now
	})
}

func (s *OrderService) Cancel(ctx context.Context, store *domain.Store, orderNumber, reason string) (*domain.Order, error) {
	order, err := s.transition(ctx, store, orderNumber, domain.StatusCancelled, func(o *domain.Order, now time.Time) {
		if reason != "" {
			note := "Cancelled: " + reason
			if o.AdminNote != "" {
				note += "\n" + o.AdminNote
			}
			o.AdminNote = note
		}
	})
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.RecordOrderCanceled(store.ID.String())
	}
	return order, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, store *domain.Store, orderNumber string) (*domain.Order, error) {
	return s.orders.GetByNumber(ctx, store.ID, orderNumber)
}

func (s *OrderService) ListByUser(ctx context.Context, store *domain.Store, userID uuid.UUID, limit, offset int) ([]*domain.Order, int64, error) {
	return s.orders.ListByUser(ctx, store.ID, userID, limit, offset)
}

func (s *OrderService) transition(ctx context.Context, store *domain.Store, orderNumber string, next domain.OrderStatus, stamp func(*domain.Order, time.Time)) (*domain.Order, error) {
	order, err := s.orders.GetByNumber(ctx, store.ID, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := EnsureTenant(store, order.StoreID); err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, order.Status, next)
	}

	prev := order.Status
	order.Status = next
	stamp(order, time.Now())
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		order.Status = prev
		return nil, fmt.Errorf("update order %s status: %w", orderNumber, err)
	}

	if s.events != nil {
		if err := s.events.OrderStatusChanged(order.OrderNumber, next); err != nil {
			slog.Error("publish status change", "order_number", order.OrderNumber, "error", err)
		}
	}
	slog.Info("order status changed", "order_number", order.OrderNumber, "from", prev, "to", next)
	return order, nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrStockExhausted):
		return "stock_exhausted"
	case errors.Is(err, domain.ErrCartAlreadyConverted):
		return "cart_converted"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	default:
		var amountErr *domain.OrderAmountError
		if errors.As(err, &amountErr) {
			return "order_amount"
		}
		return "internal"
	}
}
