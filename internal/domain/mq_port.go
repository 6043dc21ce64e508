package domain

type Message struct {
	Key   []byte
	Value []byte
}

// OrderEvents is the fire-and-forget outbound port for the notification
// collaborator. Implementations must not be consulted inside the order
// transaction and their failures never affect the created order.
type OrderEvents interface {
	OrderCreated(snapshot OrderSnapshot) error
	OrderStatusChanged(orderNumber string, status OrderStatus) error
}
