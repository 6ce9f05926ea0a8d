package ports

import (
	"context"

	"github.com/labreserva/booking-api/internal/core/domain"
)

// SubmitReservationInput is the DTO passed from the transport layer to BookingService.
type SubmitReservationInput struct {
	Professor   string
	Email       string
	Data        string
	Modalidade  string
	Alunos      int
	Laboratorio string
	Software    string
	Equipamento string
	Observacao  string
	UserID      string
}

// BookingService defines use-case operations for lab reservations.
type BookingService interface {
	List(ctx context.Context) ([]*domain.Reservation, error)
	Submit(ctx context.Context, input SubmitReservationInput) (*domain.Reservation, error)
}
