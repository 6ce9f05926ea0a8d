package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/labreserva/booking-api/internal/core/domain"
	"github.com/labreserva/booking-api/internal/core/ports"
)

type BookingService struct {
	repo       ports.ReservationRepository
	audit      ports.AdmissionRecorder
	dailyLimit int
	logger     zerolog.Logger
}

// NewBookingService returns a BookingService. audit may be nil; dailyLimit <= 0
// falls back to domain.DefaultDailyLimit.
func NewBookingService(repo ports.ReservationRepository, audit ports.AdmissionRecorder, dailyLimit int, logger zerolog.Logger) *BookingService {
	if dailyLimit <= 0 {
		dailyLimit = domain.DefaultDailyLimit
	}
	return &BookingService{repo: repo, audit: audit, dailyLimit: dailyLimit, logger: logger}
}

// List returns every reservation, unfiltered.
func (s *BookingService) List(ctx context.Context) ([]*domain.Reservation, error) {
	return s.repo.List(ctx)
}

// Submit validates a reservation request and admits it when the day still has
// capacity and the lab is free on that day. Capacity is checked first.
func (s *BookingService) Submit(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error) {
	if missingField(in) {
		return nil, domain.ErrMissingFields
	}
	if in.Alunos < 0 {
		return nil, domain.ErrInvalidStudents
	}

	day, err := domain.ParseDay(in.Data)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.dailyLimit) {
		s.record(day, in, domain.ErrCapacityReached)
		return nil, domain.ErrCapacityReached
	}

	taken, err := s.repo.ExistsByDateAndLab(ctx, day, in.Laboratorio)
	if err != nil {
		return nil, err
	}
	if taken {
		s.record(day, in, domain.ErrLabAlreadyBooked)
		return nil, domain.ErrLabAlreadyBooked
	}

	r := &domain.Reservation{
		Professor:   in.Professor,
		Email:       in.Email,
		Data:        day,
		Modalidade:  in.Modalidade,
		Alunos:      in.Alunos,
		Laboratorio: in.Laboratorio,
		Software:    in.Software,
		Equipamento: in.Equipamento,
		Observacao:  in.Observacao,
		UserID:      in.UserID,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	// The store repeats both checks atomically; a concurrent submission can
	// still lose here.
	if err := s.repo.Create(ctx, r, s.dailyLimit); err != nil {
		if errors.Is(err, domain.ErrCapacityReached) || errors.Is(err, domain.ErrLabAlreadyBooked) {
			s.record(day, in, err)
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create reservation")
		return nil, err
	}

	s.record(day, in, nil)
	s.logger.Info().
		Str("reservation_id", r.ID).
		Str("data", domain.FormatDay(day)).
		Str("laboratorio", r.Laboratorio).
		Str("user_id", r.UserID).
		Msg("reservation created")

	return r, nil
}

func (s *BookingService) record(day time.Time, in ports.SubmitReservationInput, err error) {
	if s.audit == nil {
		return
	}
	ev := domain.AdmissionEvent{
		Data:        day,
		Laboratorio: in.Laboratorio,
		UserID:      in.UserID,
		Outcome:     domain.OutcomeAccepted,
		At:          time.Now().UTC(),
	}
	switch {
	case errors.Is(err, domain.ErrCapacityReached):
		ev.Outcome, ev.Reason = domain.OutcomeRejected, "capacity"
	case errors.Is(err, domain.ErrLabAlreadyBooked):
		ev.Outcome, ev.Reason = domain.OutcomeRejected, "conflict"
	}
	s.audit.Record(ev)
}

func missingField(in ports.SubmitReservationInput) bool {
	for _, v := range []string{
		in.Professor, in.Email, in.Data, in.Modalidade, in.Laboratorio,
		in.Software, in.Equipamento, in.Observacao, in.UserID,
	} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return in.Alunos == 0
}
