package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/storefront/internal/app/domain/cart"
	"github.com/shoplane/storefront/internal/app/domain/catalog"
	"github.com/shoplane/storefront/internal/app/domain/user"
	"github.com/shoplane/storefront/internal/app/storage"
)

func TestUserSequentialIDsAndUniqueEmail(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateUser(ctx, user.User{Name: "Alice", Email: "alice@example.com", Role: user.RoleCustomer})
	require.NoError(t, err)
	second, err := store.CreateUser(ctx, user.User{Name: "Bob", Email: "bob@example.com", Role: user.RoleCustomer})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	_, err = store.CreateUser(ctx, user.User{Name: "Eve", Email: "alice@example.com"})
	require.ErrorIs(t, err, storage.ErrEmailTaken)

	byMail, err := store.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byMail.ID)
}

func TestCartRoundTripDoesNotAlias(t *testing.T) {
	store := New()
	ctx := context.Background()

	saved, err := store.SaveCart(ctx, cart.Cart{
		UserID: 7,
		Items:  []cart.Item{{ProductID: 1, Name: "Widget", Price: 10, Quantity: 2}},
	})
	require.NoError(t, err)

	// Mutating the returned slice must not leak into the store.
	saved.Items[0].Quantity = 99

	got, err := store.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestGetCartMissing(t *testing.T) {
	store := New()
	_, err := store.GetCart(context.Background(), 42)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPlaceOrderClearsCartAtomically(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.SaveCart(ctx, cart.Cart{
		UserID: 3,
		Items: []cart.Item{
			{ProductID: 1, Name: "A", Price: 10, Quantity: 2},
			{ProductID: 2, Name: "B", Price: 5, Quantity: 3},
		},
	})
	require.NoError(t, err)

	ord, err := store.PlaceOrder(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, ord.ID)
	assert.Equal(t, 35.0, ord.Total)
	assert.Len(t, ord.Items, 2)

	c, err := store.GetCart(ctx, 3)
	require.NoError(t, err)
	assert.True(t, c.Empty())
	// The cleared cart keeps a non-nil slice so JSON shows "items": [].
	assert.NotNil(t, c.Items)

	// A second checkout on the now-empty cart must fail and create nothing.
	_, err = store.PlaceOrder(ctx, 3)
	require.ErrorIs(t, err, storage.ErrEmptyCart)

	orders, err := store.ListOrdersByUser(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlaceOrderNoCart(t *testing.T) {
	store := New()
	_, err := store.PlaceOrder(context.Background(), 9)
	require.ErrorIs(t, err, storage.ErrEmptyCart)
}

func TestProductsKeepSeedOrder(t *testing.T) {
	store := New()
	ctx := context.Background()

	seed := []catalog.Product{
		{ID: 5, Name: "Last"},
		{ID: 1, Name: "First"},
	}
	require.NoError(t, store.ReplaceProducts(ctx, seed))

	listed, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 5, listed[0].ID)
	assert.Equal(t, 1, listed[1].ID)

	_, err = store.GetProduct(ctx, 2)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
