package auth

import (
	"context"
	"log/slog"
	"time"

	"bizdash/internal/core"
	"bizdash/internal/records"
	"bizdash/internal/sheets"
)

// Demo credentials accepted without a store lookup, so a fresh deployment
// with an empty Users tab can still log in.
const (
	demoUsername = "admin"
	demoPassword = "admin123"
)

type Service struct {
	users sheets.RangeReader
	jwt   *JWTManager
}

func NewService(users sheets.RangeReader, jwt *JWTManager) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login checks the credentials and returns the user with a fresh token.
// A failed Users read behaves like an empty user list: the caller sees
// invalid credentials, not a transport error.
func (s *Service) Login(ctx context.Context, username, password string) (core.User, string, error) {
	if username == "" || password == "" {
		return core.User{}, "", core.MissingFields("username", "password")
	}

	if username == demoUsername && password == demoPassword {
		user := core.User{
			ID:        "1",
			Username:  demoUsername,
			Role:      core.RoleAdmin,
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		token, err := s.jwt.Generate(user)
		if err != nil {
			return core.User{}, "", err
		}
		return user, token, nil
	}

	rows, err := s.users.ReadRange(ctx, sheets.RangeUsers)
	if err != nil {
		slog.WarnContext(ctx, "Users range unreadable, treating as empty", "error", err)
		rows = nil
	}

	for _, u := range records.MapUsers(records.DataRows(rows)) {
		if u.Username != username {
			continue
		}
		if !CheckPassword(u.PasswordHash, password) {
			return core.User{}, "", core.ErrInvalidCredentials
		}
		user := core.User{
			ID:        u.ID,
			Username:  u.Username,
			Role:      core.Role(u.Role),
			CreatedAt: u.CreatedAt,
		}
		token, err := s.jwt.Generate(user)
		if err != nil {
			return core.User{}, "", err
		}
		return user, token, nil
	}

	return core.User{}, "", core.ErrInvalidCredentials
}

// Verify resolves a bearer token to the user it was issued for.
func (s *Service) Verify(tokenString string) (core.User, error) {
	return s.jwt.Verify(tokenString)
}
