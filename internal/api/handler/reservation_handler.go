package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labreserva/booking-api/internal/api/metrics"
	"github.com/labreserva/booking-api/internal/core/domain"
	"github.com/labreserva/booking-api/internal/core/ports"
)

// ReservationHandler handles HTTP requests for lab reservations.
type ReservationHandler struct {
	service ports.BookingService
}

func NewReservationHandler(service ports.BookingService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// List handles GET /informatica and GET /auth/solicitacoes.
//
// @Summary      List every reservation request
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   reservationResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /informatica [get]
func (h *ReservationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponses(items))
}

// Submit handles POST /informatica/register.
//
// @Summary      Submit a lab reservation request
// @Description  At most five requests are accepted per day, and one per lab per day.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      submitReservationRequest  true  "Reservation details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /informatica/register [post]
func (h *ReservationHandler) Submit(c echo.Context) error {
	var req submitReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Requisição inválida")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ReservationSubmissionsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrMissingFields
	}

	if _, err := h.service.Submit(c.Request().Context(), toSubmitInput(req)); err != nil {
		metrics.ReservationSubmissionsTotal.WithLabelValues(submissionOutcome(err)).Inc()
		return err
	}

	metrics.ReservationSubmissionsTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Formulário registrado com sucesso"})
}

func submissionOutcome(err error) string {
	switch domain.KindOf(err) {
	case domain.KindCapacity:
		return "capacity"
	case domain.KindConflict:
		return "conflict"
	case domain.KindValidation:
		return "invalid"
	default:
		return "error"
	}
}
