package storage

import (
	"context"
	"errors"

	"github.com/shoplane/storefront/internal/app/domain/cart"
	"github.com/shoplane/storefront/internal/app/domain/catalog"
	"github.com/shoplane/storefront/internal/app/domain/order"
	"github.com/shoplane/storefront/internal/app/domain/user"
)

// Store-level failures. Services translate these into their own error
// vocabulary before they reach a handler.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
	ErrEmptyCart  = errors.New("cart is empty")
)

// UserStore persists user records. Users are never updated or deleted.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id int) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// ProductStore holds the catalog. It is seeded once and read-only afterwards.
type ProductStore interface {
	ReplaceProducts(ctx context.Context, products []catalog.Product) error
	GetProduct(ctx context.Context, id int) (catalog.Product, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// CartStore persists per-user carts.
type CartStore interface {
	// GetCart returns ErrNotFound when the user has no cart yet.
	GetCart(ctx context.Context, userID int) (cart.Cart, error)
	// SaveCart creates or replaces the user's cart.
	SaveCart(ctx context.Context, c cart.Cart) (cart.Cart, error)
}

// OrderStore persists orders.
type OrderStore interface {
	// PlaceOrder converts the user's cart into an order and clears the cart
	// as one atomic step: no caller can observe the order without the cart
	// already emptied, or the reverse. Returns ErrEmptyCart when the user
	// has no cart or the cart holds no items.
	PlaceOrder(ctx context.Context, userID int) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]order.Order, error)
}
