package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labreserva/booking-api/internal/core/domain"
	"github.com/labreserva/booking-api/internal/core/ports"
)

type stubBookingService struct {
	listFn   func(ctx context.Context) ([]*domain.Reservation, error)
	submitFn func(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error)
}

func (s *stubBookingService) List(ctx context.Context) ([]*domain.Reservation, error) {
	return s.listFn(ctx)
}

func (s *stubBookingService) Submit(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error) {
	return s.submitFn(ctx, in)
}

const validReservationBody = `{
	"professor":"Ana","email":"ana@kroton.com.br","data":"2024-05-01","modalidade":"presencial",
	"alunos":30,"laboratorio":"LabA","software":"VS Code","equipamento":"projetor",
	"observacao":"aula","token":"abc.def.ghi","userID":"65f0c0ffee"
}`

func TestReservationHandler_Submit_Success(t *testing.T) {
	e := newTestEcho()
	var got ports.SubmitReservationInput
	stub := &stubBookingService{
		submitFn: func(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error) {
			got = in
			return &domain.Reservation{ID: "r1"}, nil
		},
	}
	h := NewReservationHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/informatica/register", validReservationBody), rec)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "LabA", got.Laboratorio)
	assert.Equal(t, 30, got.Alunos)
	assert.Equal(t, "65f0c0ffee", got.UserID)
	assert.Equal(t, "2024-05-01", got.Data)
}

func TestReservationHandler_Submit_StudentsAsString(t *testing.T) {
	e := newTestEcho()
	var got ports.SubmitReservationInput
	stub := &stubBookingService{
		submitFn: func(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error) {
			got = in
			return &domain.Reservation{ID: "r1"}, nil
		},
	}
	h := NewReservationHandler(stub)

	body := strings.Replace(validReservationBody, `"alunos":30`, `"alunos":"30"`, 1)
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/informatica/register", body), rec)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 30, got.Alunos)
}

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    count
		wantErr bool
	}{
		{in: `30`, want: 30},
		{in: `"30"`, want: 30},
		{in: `" 7 "`, want: 7},
		{in: `"-2"`, want: -2},
		{in: `""`, want: 0},
		{in: `null`, want: 0},
		{in: `"trinta"`, wantErr: true},
		{in: `12.5`, wantErr: true},
	}
	for _, tt := range tests {
		var n count
		err := json.Unmarshal([]byte(tt.in), &n)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, n, tt.in)
	}
}

func TestReservationHandler_Submit_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		submitFn: func(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewReservationHandler(stub)

	body := `{"professor":"Ana","data":"2024-05-01","laboratorio":"LabA","alunos":10}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/informatica/register", body), httptest.NewRecorder())

	assert.Equal(t, domain.ErrMissingFields, h.Submit(c))
}

func TestReservationHandler_Submit_AdmissionErrors(t *testing.T) {
	for _, want := range []error{domain.ErrCapacityReached, domain.ErrLabAlreadyBooked, domain.ErrInvalidDate} {
		e := newTestEcho()
		stub := &stubBookingService{
			submitFn: func(ctx context.Context, in ports.SubmitReservationInput) (*domain.Reservation, error) {
				return nil, want
			},
		}
		h := NewReservationHandler(stub)
		c := e.NewContext(jsonRequest(http.MethodPost, "/informatica/register", validReservationBody), httptest.NewRecorder())

		assert.Equal(t, want, h.Submit(c))
	}
}

func TestReservationHandler_List(t *testing.T) {
	e := newTestEcho()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubBookingService{
		listFn: func(ctx context.Context) ([]*domain.Reservation, error) {
			return []*domain.Reservation{
				{ID: "r1", Data: day, Laboratorio: "LabA", Status: domain.StatusPending, UserID: "u1"},
				{ID: "r2", Data: day, Laboratorio: "LabB", Status: domain.StatusPending, UserID: "u2"},
			}, nil
		},
	}
	h := NewReservationHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/informatica", nil), rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "LabA", items[0]["laboratorio"])
	assert.Equal(t, "pending", items[0]["status"])
	assert.Equal(t, "2024-05-01T00:00:00Z", items[0]["data"])
	assert.NotContains(t, items[0], "token")
}

func TestReservationHandler_List_Empty(t *testing.T) {
	e := newTestEcho()
	stub := &stubBookingService{
		listFn: func(ctx context.Context) ([]*domain.Reservation, error) { return nil, nil },
	}
	h := NewReservationHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/informatica", nil), rec)

	require.NoError(t, h.List(c))
	assert.JSONEq(t, `[]`, rec.Body.String())
}
