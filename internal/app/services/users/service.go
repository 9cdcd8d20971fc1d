// Package users implements the admin-facing user management operations.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoplane/storefront/internal/app/domain/user"
	"github.com/shoplane/storefront/internal/app/storage"
	"github.com/shoplane/storefront/pkg/logger"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")

// Service creates and lists user accounts. Creation is admin-driven; users
// are never updated or deleted.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs a users service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// Create adds a user with the given role, defaulting to customer when the
// role is empty.
func (s *Service) Create(ctx context.Context, name, email, password string, role user.Role) (user.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return user.User{}, fmt.Errorf("name, email, and password are required")
	}
	if role == "" {
		role = user.RoleCustomer
	}
	if !role.Valid() {
		return user.User{}, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return user.User{}, ErrDuplicateEmail
		}
		return user.User{}, err
	}

	s.log.WithField("user_id", created.ID).
		WithField("role", created.Role).
		Info("user created")
	return created, nil
}

// List returns every user in creation order.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.store.ListUsers(ctx)
}
