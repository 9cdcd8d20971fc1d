package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/storefront/internal/app/domain/user"
	"github.com/shoplane/storefront/internal/app/storage/memory"
)

func TestCreateDefaultsToCustomer(t *testing.T) {
	svc := New(memory.New(), nil)

	u, err := svc.Create(context.Background(), "Bob", "bob@example.com", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, u.Role)
}

func TestCreateAdmin(t *testing.T) {
	svc := New(memory.New(), nil)

	u, err := svc.Create(context.Background(), "Root", "root@example.com", "pw", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.Create(context.Background(), "X", "x@example.com", "pw", "superuser")
	require.Error(t, err)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Bob", "bob@example.com", "pw", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Bobby", "bob@example.com", "pw", "")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestListOrdersByCreation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "A", "a@example.com", "pw", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "B", "b@example.com", "pw", "")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a@example.com", all[0].Email)
	assert.Equal(t, "b@example.com", all[1].Email)
}
