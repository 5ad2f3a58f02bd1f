package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, fn http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestReadyEndpoint_NotReadyByDefault(t *testing.T) {
	h := New()

	rec := probe(t, h.ReadyEndpoint)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyEndpoint_ReadyWithPassingChecks(t *testing.T) {
	h := New()
	h.AddReadinessCheck("always-ok", time.Second, func(context.Context) error { return nil })
	h.SetReady(true)

	rec := probe(t, h.ReadyEndpoint)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "always-ok")
}

func TestReadyEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.AddReadinessCheck("broken", time.Second, func(context.Context) error {
		return errors.New("backend down")
	})
	h.SetReady(true)

	rec := probe(t, h.ReadyEndpoint)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend down")
}

func TestLiveEndpoint_NoChecks(t *testing.T) {
	h := New()

	rec := probe(t, h.LiveEndpoint)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	require.Error(t, GoroutineCountCheck(0)(context.Background()))
}
