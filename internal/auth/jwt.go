// Package auth issues and verifies the bearer tokens guarding the API and
// checks credentials against the Users range of the backing store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bizdash/internal/core"
)

type Claims struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTManager(secret, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Generate creates a signed token carrying the user's identity.
func (m *JWTManager) Generate(user core.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates the token signature and expiry and returns the identity
// it carries.
func (m *JWTManager) Verify(tokenString string) (core.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return core.User{}, err
	}
	if !token.Valid {
		return core.User{}, errors.New("invalid token")
	}

	return core.User{
		ID:        claims.ID,
		Username:  claims.Username,
		Role:      core.Role(claims.Role),
		CreatedAt: claims.CreatedAt,
	}, nil
}
