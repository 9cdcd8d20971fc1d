package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/storefront/internal/app/domain/cart"
	"github.com/shoplane/storefront/internal/app/storage/memory"
	"github.com/shoplane/storefront/pkg/logger"
)

func quietLogger() *logger.Logger {
	log := logger.NewDefault("test")
	log.SetOutput(io.Discard)
	return log
}

func seedCart(t *testing.T, store *memory.Store, userID int) {
	t.Helper()
	_, err := store.SaveCart(context.Background(), cart.Cart{
		UserID: userID,
		Items: []cart.Item{
			{ProductID: 1, Name: "Headphones", Price: 10, Quantity: 2},
			{ProductID: 2, Name: "Watch", Price: 5, Quantity: 1},
		},
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestCheckoutConvertsCart(t *testing.T) {
	store := memory.New()
	svc := New(store, quietLogger())
	seedCart(t, store, 1)

	o, err := svc.Checkout(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, o.ID)
	assert.Equal(t, 1, o.UserID)
	assert.Len(t, o.Items, 2)
	assert.InDelta(t, 25.0, o.Total, 1e-9)
	assert.Equal(t, "pending", string(o.Status))
	assert.False(t, o.CreatedAt.IsZero())
}

func TestCheckoutClearsCart(t *testing.T) {
	store := memory.New()
	svc := New(store, quietLogger())
	seedCart(t, store, 1)

	_, err := svc.Checkout(context.Background(), 1)
	require.NoError(t, err)

	c, err := store.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = svc.Checkout(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEmptyCart)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrderItemsAreSnapshots(t *testing.T) {
	store := memory.New()
	svc := New(store, quietLogger())
	seedCart(t, store, 1)

	o, err := svc.Checkout(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, o.Items, 2)

	_, err = store.SaveCart(context.Background(), cart.Cart{
		UserID: 1,
		Items:  []cart.Item{{ProductID: 9, Name: "Tampered", Price: 1, Quantity: 99}},
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Headphones", all[0].Items[0].Name)
	assert.Equal(t, 2, all[0].Items[0].Quantity)
}

func TestCheckoutWithoutCart(t *testing.T) {
	store := memory.New()
	svc := New(store, quietLogger())

	_, err := svc.Checkout(context.Background(), 9)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestListByUserFiltersOrders(t *testing.T) {
	store := memory.New()
	svc := New(store, quietLogger())
	seedCart(t, store, 1)
	seedCart(t, store, 2)

	_, err := svc.Checkout(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.Checkout(context.Background(), 2)
	require.NoError(t, err)

	mine, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].UserID)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotifierDrainsPlacedOrders(t *testing.T) {
	store := memory.New()
	svc := New(store, quietLogger())
	seedCart(t, store, 1)

	notifier := NewNotifier(svc, quietLogger())
	require.NoError(t, notifier.Start(context.Background()))

	_, err := svc.Checkout(context.Background(), 1)
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for len(svc.placed) > 0 {
		select {
		case <-deadline:
			t.Fatal("notifier did not drain placed orders")
		case <-time.After(10 * time.Millisecond):
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, notifier.Stop(ctx))
}
