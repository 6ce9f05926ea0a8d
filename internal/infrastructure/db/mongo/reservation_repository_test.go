package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labreserva/booking-api/internal/core/domain"
)

// These tests need a MongoDB replica set (transactions); set MONGO_TEST_URI to run them.
func newTestDB(t *testing.T) *ReservationRepository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: fmt.Sprintf("booking_test_%d", time.Now().UnixNano())})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	require.NoError(t, EnsureIndexes(ctx, db))
	return NewReservationRepository(db, true)
}

func testReservation(day time.Time, lab string) *domain.Reservation {
	return &domain.Reservation{
		Professor:   "Ana",
		Email:       "ana@kroton.com.br",
		Data:        day,
		Modalidade:  "presencial",
		Alunos:      20,
		Laboratorio: lab,
		Software:    "VS Code",
		Equipamento: "projetor",
		Observacao:  "-",
		UserID:      "user-1",
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestReservationRepository_CreateAndQuery(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	res := testReservation(day, "LabA")
	require.NoError(t, repo.Create(ctx, res, 5))
	assert.NotEmpty(t, res.ID)

	n, err := repo.CountByDate(ctx, day)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	exists, err := repo.ExistsByDateAndLab(ctx, day, "LabA")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByDateAndLab(ctx, day, "LabB")
	require.NoError(t, err)
	assert.False(t, exists)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.StatusPending, items[0].Status)
	assert.True(t, day.Equal(items[0].Data))

	err = repo.Create(ctx, testReservation(day, "LabA"), 5)
	assert.ErrorIs(t, err, domain.ErrLabAlreadyBooked)
}

func TestReservationRepository_ConcurrentCreateRespectsLimit(t *testing.T) {
	repo := newTestDB(t)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(context.Background(), testReservation(day, fmt.Sprintf("Lab%d", i)), 5)
		}(i)
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrCapacityReached)
	}
	assert.Equal(t, 5, accepted)
}
