package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labreserva/booking-api/internal/core/domain"
	"github.com/labreserva/booking-api/internal/core/ports"
)

const collectionAdmissionEvents = "admission_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// InsertEvent persists an admission decision to the admission_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.AdmissionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"data":         event.Data.UTC(),
		"laboratorio":  event.Laboratorio,
		"userID":       event.UserID,
		"outcome":      string(event.Outcome),
		"decided_at":   event.At.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	_, err := r.db.Collection(collectionAdmissionEvents).InsertOne(ctx, doc)
	return err
}
