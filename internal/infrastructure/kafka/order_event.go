package publisher

import "github.com/vendaro/storefront-service/internal/domain"

const (
	eventOrderCreated       = "order.created"
	eventOrderStatusChanged = "order.status_changed"
)

type OrderCreatedEvent struct {
	Type     string               `json:"type"`
	Snapshot domain.OrderSnapshot `json:"order"`
}

type OrderStatusEvent struct {
	Type        string `json:"type"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}
