package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// messageResponse is the envelope used for confirmations and every error.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmpassword"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type getUserResponse struct {
	User userResponse `json:"user"`
}

// --- Reservations ---

type submitReservationRequest struct {
	Professor   string `json:"professor"   validate:"required"`
	Email       string `json:"email"       validate:"required"`
	Data        string `json:"data"        validate:"required"`
	Modalidade  string `json:"modalidade"  validate:"required"`
	Alunos      count  `json:"alunos"      validate:"required" swaggertype:"integer"`
	Laboratorio string `json:"laboratorio" validate:"required"`
	Software    string `json:"software"    validate:"required"`
	Equipamento string `json:"equipamento" validate:"required"`
	Observacao  string `json:"observacao"  validate:"required"`
	UserID      string `json:"userID"      validate:"required"`
	// Token is accepted from older clients but never stored; userID identifies the submitter.
	Token string `json:"token"`
}

// count accepts a JSON number or a numeric string ("30"), as form clients send both.
type count int

func (n *count) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", s)
	}
	*n = count(v)
	return nil
}

type reservationResponse struct {
	ID          string    `json:"id"`
	Professor   string    `json:"professor"`
	Email       string    `json:"email"`
	Data        time.Time `json:"data"`
	Modalidade  string    `json:"modalidade"`
	Alunos      int       `json:"alunos"`
	Laboratorio string    `json:"laboratorio"`
	Software    string    `json:"software"`
	Equipamento string    `json:"equipamento"`
	Observacao  string    `json:"observacao"`
	UserID      string    `json:"userID"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
