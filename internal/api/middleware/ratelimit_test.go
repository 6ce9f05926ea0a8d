package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labreserva/booking-api/internal/core/domain"
)

func doLimited(t *testing.T, e *echo.Echo, h echo.HandlerFunc, ip string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = ip + ":5555"
	return h(e.NewContext(req, httptest.NewRecorder()))
}

func TestRateLimit_PerIPBurst(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(0.001, 2)
	h := RateLimit(rl)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	require.NoError(t, doLimited(t, e, h, "10.0.0.1"))
	require.NoError(t, doLimited(t, e, h, "10.0.0.1"))
	assert.ErrorIs(t, doLimited(t, e, h, "10.0.0.1"), domain.ErrTooManyRequests)

	// other clients keep their own bucket
	assert.NoError(t, doLimited(t, e, h, "10.0.0.2"))
}

func TestRateLimiter_SweepEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.get("10.0.0.1")
	now = now.Add(time.Minute)
	rl.get("10.0.0.2")

	now = now.Add(limiterIdleTTL + time.Second - time.Minute)
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "10.0.0.1")
	assert.Contains(t, rl.clients, "10.0.0.2")
}
