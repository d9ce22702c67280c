package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusNotDelivered OrderStatus = "not_delivered"
)

// statusTransitions is the closed transition table for order statuses.
// Delivered and not-delivered are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusDelivered, OrderStatusNotDelivered},
	OrderStatusDelivered:    {},
	OrderStatusNotDelivered: {},
}

// Valid reports whether the status is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents a placed order
type Order struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status      OrderStatus     `db:"status" json:"status"`
	OrderedAt   time.Time       `db:"ordered_at" json:"ordered_at"`

	// Not stored directly in the database
	Lines []OrderLine `db:"-" json:"lines,omitempty"`
}

// OrderLine represents one line of an order. PriceAtTime is the unit
// price snapshotted at purchase; it never tracks later menu changes.
type OrderLine struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	OrderID     uuid.UUID       `db:"order_id" json:"order_id"`
	MenuItemID  uuid.UUID       `db:"menu_item_id" json:"menu_item_id"`
	Quantity    int             `db:"quantity" json:"quantity"`
	PriceAtTime decimal.Decimal `db:"price_at_time" json:"price_at_time"`

	// Not stored directly in the database
	Name string `db:"-" json:"name"`
}
