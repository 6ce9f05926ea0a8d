package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-05-01", " 2024-05-01 ", "2024-05-01T00:00:00Z", "2024-05-01T23:59:59Z", "2024-05-01T10:00:00-02:00"} {
		got, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed to %s", in, got)
	}
}

func TestParseDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "01/05/2024", "2024-13-01", "tomorrow"} {
		_, err := ParseDay(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestParseDay_OffsetCrossesMidnight(t *testing.T) {
	got, err := ParseDay("2024-05-01T22:00:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", FormatDay(got))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindCapacity, KindOf(ErrCapacityReached))
	assert.Equal(t, KindConflict, KindOf(ErrLabAlreadyBooked))
	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
}
