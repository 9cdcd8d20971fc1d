package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shoplane/storefront/internal/app/domain/user"
)

// Claims is the JWT payload: the identity the server asserts about a user.
type Claims struct {
	UserID int       `json:"user_id"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified result of a token check, attached to the request
// context by the auth middleware.
type Identity struct {
	UserID int
	Email  string
	Role   user.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == user.RoleAdmin
}

// TokenMaker issues and verifies HS256 tokens. Tokens are stateless: there is
// no server-side session and no revocation, logout is a client-side discard.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenMaker creates a maker signing with secret for tokens valid for ttl.
func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenMaker{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "storefront",
	}
}

// Issue signs a token embedding the user's id, email, and role.
func (m *TokenMaker) Issue(u user.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning the embedded identity.
// Malformed tokens, wrong signatures, wrong algorithms, and expired tokens
// all fail with ErrInvalidToken.
func (m *TokenMaker) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
