package ports

import (
	"context"

	"github.com/sokoyetu/soko-api/internal/domains/users/domain"
)

// RegisterInput carries everything a new account needs.
type RegisterInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	Role      string
	County    string
	SubCounty string
}

// UpdateProfileInput carries optional profile changes. Empty fields are
// left untouched.
type UpdateProfileInput struct {
	Name      string
	Phone     string
	County    string
	SubCounty string
}

// Service exposes account and session use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.User, error)
}
