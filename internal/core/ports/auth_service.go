package ports

import (
	"context"

	"github.com/labreserva/booking-api/internal/core/domain"
)

// RegisterInput carries the signup form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenVerifier validates bearer tokens and returns the user id they carry.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}
