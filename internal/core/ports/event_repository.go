package ports

import (
	"context"

	"github.com/labreserva/booking-api/internal/core/domain"
)

// EventRepository persists the admission audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AdmissionEvent) error
}

// AdmissionRecorder receives admission decisions. Implementations must not block
// the request path for long.
type AdmissionRecorder interface {
	Record(event domain.AdmissionEvent)
}
