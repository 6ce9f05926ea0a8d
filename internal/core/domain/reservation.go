package domain

import (
	"strings"
	"time"
)

// ReservationStatus is the review state of a lab reservation request.
type ReservationStatus string

// StatusPending is assigned to every new request; nothing in this service moves it further.
const StatusPending ReservationStatus = "pending"

// DefaultDailyLimit is the maximum number of reservations accepted for a single day.
const DefaultDailyLimit = 5

const dateLayout = "2006-01-02"

// Reservation is a request to use a computer lab on a given day.
type Reservation struct {
	ID          string            `json:"id"`
	Professor   string            `json:"professor"`
	Email       string            `json:"email"`
	Data        time.Time         `json:"data"`
	Modalidade  string            `json:"modalidade"`
	Alunos      int               `json:"alunos"`
	Laboratorio string            `json:"laboratorio"`
	Software    string            `json:"software"`
	Equipamento string            `json:"equipamento"`
	Observacao  string            `json:"observacao"`
	UserID      string            `json:"userID"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ParseDay parses a YYYY-MM-DD or RFC3339 value and truncates it to the UTC
// calendar day, so every reservation on the same day compares equal.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return TruncateDay(t), nil
}

// TruncateDay returns midnight UTC of t's UTC calendar day.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
