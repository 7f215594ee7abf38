package auth

import (
	"context"
	"errors"

	"github.com/sapliy/contractplus/pkg/bcryptutil"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore is the slice of the user repository Login needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// Service authenticates users and hands out bearer tokens.
type Service struct {
	users  UserStore
	tokens *TokenManager
}

func NewService(users UserStore, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies the credentials and returns the user together with a signed
// token. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !bcryptutil.CompareHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UserByID resolves the authenticated user for /auth/me.
func (s *Service) UserByID(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}
