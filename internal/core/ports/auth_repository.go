package ports

import (
	"context"

	"github.com/labreserva/booking-api/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists user and returns it with its store-assigned ID.
	// A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// MailDomainChecker reports whether a domain publishes mail-exchange records.
type MailDomainChecker interface {
	HasMX(ctx context.Context, domain string) (bool, error)
}

// LoginGuard tracks failed login attempts per email.
type LoginGuard interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
