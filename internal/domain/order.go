package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusContacted  OrderStatus = "contacted"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPaid       OrderStatus = "paid"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var statusRank = map[OrderStatus]int{
	StatusNew:        0,
	StatusContacted:  1,
	StatusConfirmed:  2,
	StatusPaid:       3,
	StatusProcessing: 4,
	StatusShipped:    5,
	StatusDelivered:  6,
}

// CanTransitionTo enforces the forward-only status machine. Any strictly
// forward move along the chain is legal; cancellation is reachable from any
// state before shipment. Nothing moves backward and cancelled is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == StatusCancelled {
		return false
	}
	if next == StatusCancelled {
		return statusRank[s] < statusRank[StatusShipped]
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// BuyerDetails is the contact/shipping block captured at checkout.
type BuyerDetails struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	PostalCode   string
	Country      string
	CustomerNote string
}

// Order is the immutable result of converting a cart. Status advances through
// the machine above; everything else is a historical snapshot.
type Order struct {
	ID             uuid.UUID
	StoreID        uuid.UUID
	OrderNumber    string
	UserID         *uuid.UUID
	Status         OrderStatus
	Details        BuyerDetails
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	Tax            decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	IsWholesale    bool
	TrackingNumber string
	AdminNote      string
	Lines          []OrderLine
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CalculateTotal clamps at zero so a large discount never produces a
// negative total.
func CalculateTotal(subtotal, shipping, tax, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shipping).Add(tax).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// OrderLine is a permanent snapshot of one cart line. ProductID is nullable
// so deleting a catalog item never corrupts order history; name and SKU are
// denormalized for the same reason.
type OrderLine struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
	IsWholesale bool
}

func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderSnapshot is the read-only view handed to the notification collaborator
// after creation succeeds. The core never waits on its delivery.
type OrderSnapshot struct {
	OrderNumber string          `json:"order_number"`
	StoreID     uuid.UUID       `json:"store_id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	IsWholesale bool            `json:"is_wholesale"`
	Lines       []SnapshotLine  `json:"lines"`
}

type SnapshotLine struct {
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Snapshot builds the notification view of an order.
func (o *Order) Snapshot(currency string) OrderSnapshot {
	lines := make([]SnapshotLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = SnapshotLine{
			ProductName: l.ProductName,
			ProductSKU:  l.ProductSKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return OrderSnapshot{
		OrderNumber: o.OrderNumber,
		StoreID:     o.StoreID,
		Email:       o.Details.Email,
		FullName:    o.Details.FirstName + " " + o.Details.LastName,
		Total:       o.Total,
		Currency:    currency,
		IsWholesale: o.IsWholesale,
		Lines:       lines,
	}
}
