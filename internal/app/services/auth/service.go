// Package auth verifies credentials and issues identity tokens.
package auth

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

var (
	ErrDuplicateEmail = errors.New("user with this email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot probe which of the two failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service registers users and exchanges credentials for identity tokens.
type Service struct {
	users  storage.UserStore
	tokens *TokenMaker
	log    *logger.Logger
}

// New constructs an auth service.
func New(users storage.UserStore, tokens *TokenMaker, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// Register creates a customer account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, name, email, password string) (user.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return user.User{}, "", fmt.Errorf("name, email, and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.CreateUser(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return user.User{}, "", ErrDuplicateEmail
		}
		return user.User{}, "", err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return user.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("user_id", created.ID).Info("user registered")
	return created, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	email = strings.TrimSpace(email)

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return user.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("user_id", u.ID).Info("user logged in")
	return u, token, nil
}

// Verify validates a token string and returns the identity it asserts.
func (s *Service) Verify(tokenString string) (Identity, error) {
	return s.tokens.Verify(tokenString)
}

// Me resolves the identity back to the stored user record.
func (s *Service) Me(ctx context.Context, id Identity) (user.User, error) {
	u, err := s.users.GetUser(ctx, id.UserID)
	if err != nil {
		return user.User{}, ErrInvalidToken
	}
	return u, nil
}
