package ports

import (
	"context"
	"time"

	"github.com/labreserva/booking-api/internal/core/domain"
)

// ReservationRepository defines persistence operations for lab reservations.
// Days passed in are always UTC midnight (see domain.TruncateDay).
type ReservationRepository interface {
	List(ctx context.Context) ([]*domain.Reservation, error)
	CountByDate(ctx context.Context, day time.Time) (int64, error)
	ExistsByDateAndLab(ctx context.Context, day time.Time, laboratorio string) (bool, error)
	// Create inserts r while re-checking both admission rules atomically.
	// It returns domain.ErrCapacityReached when the day already holds dailyLimit
	// reservations and domain.ErrLabAlreadyBooked when (day, lab) is taken.
	Create(ctx context.Context, r *domain.Reservation, dailyLimit int) error
}
