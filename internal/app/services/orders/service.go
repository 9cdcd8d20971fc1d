// Package orders converts carts into orders and exposes order history.
package orders

import (
	"context"
	"errors"

	"github.com/shoplane/storefront/internal/app/domain/order"
	"github.com/shoplane/storefront/internal/app/storage"
	"github.com/shoplane/storefront/pkg/logger"
)

var ErrEmptyCart = errors.New("cart is empty")

// Service places and lists orders.
type Service struct {
	store storage.OrderStore
	log   *logger.Logger

	placed chan order.Order
}

// New constructs an order service. Placed orders are published on an
// internal channel consumed by the Notifier; publishing never blocks
// checkout.
func New(store storage.OrderStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	return &Service{
		store:  store,
		log:    log,
		placed: make(chan order.Order, 64),
	}
}

// Checkout converts the user's cart into an order and clears the cart.
// The conversion is atomic: concurrent checkouts of the same cart
// produce exactly one order.
func (s *Service) Checkout(ctx context.Context, userID int) (order.Order, error) {
	o, err := s.store.PlaceOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyCart) || errors.Is(err, storage.ErrNotFound) {
			return order.Order{}, ErrEmptyCart
		}
		return order.Order{}, err
	}

	select {
	case s.placed <- o:
	default:
		s.log.WithField("order_id", o.ID).Warn("order event dropped, notifier backlog full")
	}

	s.log.WithField("order_id", o.ID).
		WithField("user_id", userID).
		WithField("total", o.Total).
		Info("order placed")
	return o, nil
}

// List returns every order in the system, oldest first.
func (s *Service) List(ctx context.Context) ([]order.Order, error) {
	return s.store.ListOrders(ctx)
}

// ListByUser returns the user's own orders, oldest first.
func (s *Service) ListByUser(ctx context.Context, userID int) ([]order.Order, error) {
	return s.store.ListOrdersByUser(ctx, userID)
}
