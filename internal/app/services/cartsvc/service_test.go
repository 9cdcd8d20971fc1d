package cartsvc

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/storefront/internal/app/domain/catalog"
	"github.com/shoplane/storefront/internal/app/storage/memory"
	"github.com/shoplane/storefront/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store := memory.New()
	err := store.ReplaceProducts(context.Background(), []catalog.Product{
		{ID: 1, Name: "Headphones", Price: 10, Image: "h.jpg"},
		{ID: 2, Name: "Watch", Price: 5, Image: "w.jpg"},
	})
	require.NoError(t, err)

	log := logger.NewDefault("test")
	log.SetOutput(io.Discard)
	return New(store, store, log)
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, 1, 1, 3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, 1, 2, 1)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "Watch", c.Items[0].Name)
	assert.Equal(t, 5.0, c.Items[0].Price)
	assert.Equal(t, "w.jpg", c.Items[0].Image)
}

func TestAddItemValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 99, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AddItem(ctx, 1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestSetQuantityZeroRemovesItem(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)

	c, err := svc.SetQuantity(ctx, 1, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = svc.SetQuantity(ctx, 1, 1, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSetQuantityMissingCart(t *testing.T) {
	svc := newService(t)

	_, err := svc.SetQuantity(context.Background(), 42, 1, 3)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, 2, 1)
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].ProductID)

	_, err = svc.RemoveItem(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetMissingCartIsEmpty(t *testing.T) {
	svc := newService(t)

	c, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.UserID)
	assert.Empty(t, c.Items)
}

func TestCartTotals(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, 1, 2, 3)
	require.NoError(t, err)

	assert.InDelta(t, 35.0, c.Total(), 1e-9)
	assert.Equal(t, 5, c.ItemCount())
}

func ExampleService_AddItem() {
	store := memory.New()
	_ = store.ReplaceProducts(context.Background(), []catalog.Product{
		{ID: 1, Name: "Premium Headphones", Price: 199.99},
	})
	log := logger.NewDefault("example-cart")
	log.SetOutput(io.Discard)
	svc := New(store, store, log)
	c, _ := svc.AddItem(context.Background(), 1, 1, 2)
	fmt.Println(c.Items[0].Name, c.ItemCount())
	// Output:
	// Premium Headphones 2
}

func TestConcurrentAddsDoNotLoseIncrements(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, 1, 1, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, n, c.Items[0].Quantity)
}
