package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shoplane/storefront/internal/app/domain/cart"
	"github.com/shoplane/storefront/internal/app/domain/catalog"
	"github.com/shoplane/storefront/internal/app/domain/order"
	"github.com/shoplane/storefront/internal/app/domain/user"
	"github.com/shoplane/storefront/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use: a single mutex guards every table, sequential id
// assignment happens under that mutex, and all returned values are clones so
// callers never alias store state.
type Store struct {
	mu          sync.RWMutex
	nextUserID  int
	nextOrderID int
	users       map[int]user.User
	usersByMail map[string]int
	products    map[int]catalog.Product
	productIDs  []int
	carts       map[int]cart.Cart
	orders      []order.Order
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ProductStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextUserID:  1,
		nextOrderID: 1,
		users:       make(map[int]user.User),
		usersByMail: make(map[string]int),
		products:    make(map[int]catalog.Product),
		carts:       make(map[int]cart.Cart),
	}
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByMail[u.Email]; exists {
		return user.User{}, storage.ErrEmailTaken
	}

	u.ID = s.nextUserID
	s.nextUserID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	s.users[u.ID] = u
	s.usersByMail[u.Email] = u.ID
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByMail[email]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ProductStore implementation -------------------------------------------------

func (s *Store) ReplaceProducts(_ context.Context, products []catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int]catalog.Product, len(products))
	s.productIDs = s.productIDs[:0]
	for _, p := range products {
		s.products[p.ID] = p
		s.productIDs = append(s.productIDs, p.ID)
	}
	return nil
}

func (s *Store) GetProduct(_ context.Context, id int) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListProducts(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]catalog.Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		result = append(result, s.products[id])
	}
	return result, nil
}

// CartStore implementation ----------------------------------------------------

func (s *Store) GetCart(_ context.Context, userID int) (cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[userID]
	if !ok {
		return cart.Cart{}, storage.ErrNotFound
	}
	return cloneCart(c), nil
}

func (s *Store) SaveCart(_ context.Context, c cart.Cart) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.UpdatedAt = time.Now().UTC()
	s.carts[c.UserID] = cloneCart(c)
	return cloneCart(c), nil
}

// OrderStore implementation ---------------------------------------------------

// PlaceOrder runs the whole checkout step under the store mutex: read the
// cart, build the order snapshot, assign the next id, and clear the cart.
// Nothing outside the lock can see an intermediate state.
func (s *Store) PlaceOrder(_ context.Context, userID int) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok || c.Empty() {
		return order.Order{}, storage.ErrEmptyCart
	}

	ord := order.FromCart(c, s.nextOrderID, time.Now())
	s.nextOrderID++
	s.orders = append(s.orders, ord)

	// Keep Items a non-nil slice so the cleared cart still serializes
	// as "items": [].
	c.Items = []cart.Item{}
	c.UpdatedAt = ord.CreatedAt
	s.carts[userID] = c

	return cloneOrder(ord), nil
}

func (s *Store) ListOrders(_ context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]order.Order, 0, len(s.orders))
	for _, ord := range s.orders {
		result = append(result, cloneOrder(ord))
	}
	return result, nil
}

func (s *Store) ListOrdersByUser(_ context.Context, userID int) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []order.Order{}
	for _, ord := range s.orders {
		if ord.UserID == userID {
			result = append(result, cloneOrder(ord))
		}
	}
	return result, nil
}

// Clone helpers ---------------------------------------------------------------

func cloneItems(items []cart.Item) []cart.Item {
	if items == nil {
		return nil
	}
	out := make([]cart.Item, len(items))
	copy(out, items)
	return out
}

func cloneCart(c cart.Cart) cart.Cart {
	c.Items = cloneItems(c.Items)
	return c
}

func cloneOrder(ord order.Order) order.Order {
	ord.Items = cloneItems(ord.Items)
	return ord
}
