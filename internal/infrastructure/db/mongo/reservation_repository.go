package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/labreserva/booking-api/internal/core/domain"
)

const (
	collectionReservations = "informaticas"
	collectionDays         = "reservation_days"
)

// ReservationRepository implements ports.ReservationRepository using MongoDB.
//
// With transactions enabled, Create serialises writers per day by bumping a
// per-day lock document before counting, so the capacity check cannot be
// raced. The (data, laboratorio) unique index guards exclusivity either way.
type ReservationRepository struct {
	col             *mongo.Collection
	days            *mongo.Collection
	useTransactions bool
}

func NewReservationRepository(db *mongo.Database, useTransactions bool) *ReservationRepository {
	return &ReservationRepository{
		col:             db.Collection(collectionReservations),
		days:            db.Collection(collectionDays),
		useTransactions: useTransactions,
	}
}

type mongoReservation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Professor   string             `bson:"professor"`
	Email       string             `bson:"email"`
	Data        time.Time          `bson:"data"`
	Modalidade  string             `bson:"modalidade"`
	Alunos      int                `bson:"alunos"`
	Laboratorio string             `bson:"laboratorio"`
	Software    string             `bson:"software"`
	Equipamento string             `bson:"equipamento"`
	Observacao  string             `bson:"observacao"`
	UserID      string             `bson:"userID"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toMongoReservation(r *domain.Reservation) mongoReservation {
	return mongoReservation{
		Professor:   r.Professor,
		Email:       r.Email,
		Data:        domain.TruncateDay(r.Data),
		Modalidade:  r.Modalidade,
		Alunos:      r.Alunos,
		Laboratorio: r.Laboratorio,
		Software:    r.Software,
		Equipamento: r.Equipamento,
		Observacao:  r.Observacao,
		UserID:      r.UserID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func (m *mongoReservation) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:          m.ID.Hex(),
		Professor:   m.Professor,
		Email:       m.Email,
		Data:        m.Data.UTC(),
		Modalidade:  m.Modalidade,
		Alunos:      m.Alunos,
		Laboratorio: m.Laboratorio,
		Software:    m.Software,
		Equipamento: m.Equipamento,
		Observacao:  m.Observacao,
		UserID:      m.UserID,
		Status:      domain.ReservationStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// List returns all reservations in insertion order.
func (r *ReservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}

	var docs []mongoReservation
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	out := make([]*domain.Reservation, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// CountByDate counts the reservations already booked for day.
func (r *ReservationRepository) CountByDate(ctx context.Context, day time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"data": domain.TruncateDay(day)})
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return n, nil
}

// ExistsByDateAndLab reports whether laboratorio is already booked on day.
func (r *ReservationRepository) ExistsByDateAndLab(ctx context.Context, day time.Time, laboratorio string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.col.FindOne(ctx, bson.M{
		"data":        domain.TruncateDay(day),
		"laboratorio": laboratorio,
	}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find reservation: %w", err)
	}
	return true, nil
}

// Create inserts res, re-checking the daily limit and lab exclusivity atomically.
// On success res.ID is set.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation, dailyLimit int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoReservation(res)
	if !r.useTransactions {
		return wrapCreateErr(r.insert(ctx, res, doc))
	}

	sess, err := r.col.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.lockDay(sc, doc.Data); err != nil {
			return nil, err
		}

		n, err := r.col.CountDocuments(sc, bson.M{"data": doc.Data})
		if err != nil {
			return nil, err
		}
		if n >= int64(dailyLimit) {
			return nil, domain.ErrCapacityReached
		}

		return nil, r.insert(sc, res, doc)
	})
	return wrapCreateErr(err)
}

func wrapCreateErr(err error) error {
	if err == nil || domain.KindOf(err) != "" {
		return err
	}
	return fmt.Errorf("create reservation: %w", err)
}

// lockDay touches the day's lock document so concurrent transactions for the
// same day hit a write conflict and get retried by WithTransaction. Errors are
// returned unwrapped to keep their transient-transaction labels intact.
func (r *ReservationRepository) lockDay(ctx context.Context, day time.Time) error {
	_, err := r.days.UpdateOne(ctx,
		bson.M{"_id": day},
		bson.M{
			"$inc": bson.M{"writes": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *ReservationRepository) insert(ctx context.Context, res *domain.Reservation, doc mongoReservation) error {
	out, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLabAlreadyBooked
		}
		return err
	}
	if oid, ok := out.InsertedID.(primitive.ObjectID); ok {
		res.ID = oid.Hex()
	}
	return nil
}

// EnsureIndexes creates the indexes backing the admission rules.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "data", Value: 1}, {Key: "laboratorio", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("data_laboratorio_unique"),
		},
		{Keys: bson.D{{Key: "userID", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
