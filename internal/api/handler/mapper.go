package handler

import (
	"github.com/labreserva/booking-api/internal/core/domain"
	"github.com/labreserva/booking-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
}

func toSubmitInput(req submitReservationRequest) ports.SubmitReservationInput {
	return ports.SubmitReservationInput{
		Professor:   req.Professor,
		Email:       req.Email,
		Data:        req.Data,
		Modalidade:  req.Modalidade,
		Alunos:      int(req.Alunos),
		Laboratorio: req.Laboratorio,
		Software:    req.Software,
		Equipamento: req.Equipamento,
		Observacao:  req.Observacao,
		UserID:      req.UserID,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toReservationResponses(items []*domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, len(items))
	for i, r := range items {
		out[i] = reservationResponse{
			ID:          r.ID,
			Professor:   r.Professor,
			Email:       r.Email,
			Data:        r.Data.UTC(),
			Modalidade:  r.Modalidade,
			Alunos:      r.Alunos,
			Laboratorio: r.Laboratorio,
			Software:    r.Software,
			Equipamento: r.Equipamento,
			Observacao:  r.Observacao,
			UserID:      r.UserID,
			Status:      string(r.Status),
			CreatedAt:   r.CreatedAt.UTC(),
		}
	}
	return out
}
