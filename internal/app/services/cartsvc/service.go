// Package cartsvc implements per-user shopping carts.
package cartsvc

import (
	"context"
	"errors"
	"sync"

	"github.com/shoplane/storefront/internal/app/domain/cart"
	"github.com/shoplane/storefront/internal/app/storage"
	"github.com/shoplane/storefront/pkg/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Service mutates carts through read-modify-write cycles. A per-user
// mutex serializes concurrent updates to the same cart so merged
// quantities never lose increments.
type Service struct {
	carts    storage.CartStore
	products storage.ProductStore
	log      *logger.Logger

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// New constructs a cart service.
func New(carts storage.CartStore, products storage.ProductStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("cart")
	}
	return &Service{
		carts:    carts,
		products: products,
		log:      log,
		locks:    make(map[int]*sync.Mutex),
	}
}

func (s *Service) userLock(userID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get returns the user's cart, or an empty cart if none exists yet.
func (s *Service) Get(ctx context.Context, userID int) (cart.Cart, error) {
	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return cart.Cart{UserID: userID, Items: []cart.Item{}}, nil
		}
		return cart.Cart{}, err
	}
	return c, nil
}

// AddItem puts a product into the cart. Adding a product already in
// the cart accumulates its quantity instead of creating a second line.
func (s *Service) AddItem(ctx context.Context, userID, productID, quantity int) (cart.Cart, error) {
	if quantity <= 0 {
		return cart.Cart{}, ErrInvalidQuantity
	}

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return cart.Cart{}, ErrProductNotFound
		}
		return cart.Cart{}, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.Get(ctx, userID)
	if err != nil {
		return cart.Cart{}, err
	}

	if i := c.Find(productID); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, cart.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  quantity,
		})
	}

	saved, err := s.carts.SaveCart(ctx, c)
	if err != nil {
		return cart.Cart{}, err
	}
	s.log.WithField("user_id", userID).WithField("product_id", productID).Debug("item added to cart")
	return saved, nil
}

// SetQuantity overwrites an item's quantity. A quantity of zero or
// less removes the item from the cart.
func (s *Service) SetQuantity(ctx context.Context, userID, productID, quantity int) (cart.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return cart.Cart{}, ErrCartNotFound
		}
		return cart.Cart{}, err
	}

	i := c.Find(productID)
	if i < 0 {
		return cart.Cart{}, ErrItemNotFound
	}

	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = quantity
	}

	return s.carts.SaveCart(ctx, c)
}

// RemoveItem deletes an item from the cart entirely.
func (s *Service) RemoveItem(ctx context.Context, userID, productID int) (cart.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return cart.Cart{}, ErrCartNotFound
		}
		return cart.Cart{}, err
	}

	i := c.Find(productID)
	if i < 0 {
		return cart.Cart{}, ErrItemNotFound
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)

	saved, err := s.carts.SaveCart(ctx, c)
	if err != nil {
		return cart.Cart{}, err
	}
	s.log.WithField("user_id", userID).WithField("product_id", productID).Debug("item removed from cart")
	return saved, nil
}
