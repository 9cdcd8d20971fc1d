package order

import (
	"time"

	"github.com/shoplane/storefront/internal/app/domain/cart"
)

// Status of an order. Orders are created pending and nothing in this system
// advances them further; there is no fulfillment pipeline.
type Status string

const StatusPending Status = "pending"

// Order is an immutable snapshot of a cart at the moment of checkout.
type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"userId"`
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// FromCart builds an order from the cart's current lines. The item slice is
// deep-copied so later cart mutations cannot reach the order.
func FromCart(c cart.Cart, id int, now time.Time) Order {
	items := make([]cart.Item, len(c.Items))
	copy(items, c.Items)
	return Order{
		ID:        id,
		UserID:    c.UserID,
		Items:     items,
		Total:     c.Total(),
		Status:    StatusPending,
		CreatedAt: now.UTC(),
	}
}
