package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/insight-deck/pkg/telemetry"
)

func TestLogger_AttachesRequestLogger(t *testing.T) {
	// Given
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(Logger(&base))
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("handled")
	})

	// When
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	router.ServeHTTP(rec, req)

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	line := buf.String()
	assert.Contains(t, line, `"method":"GET"`)
	assert.Contains(t, line, `"path":"/health"`)
	assert.Contains(t, line, `"request_id":"req-42"`)
	assert.Contains(t, line, `"message":"handled"`)
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	// Given
	router := chi.NewRouter()
	router.Use(Metrics)
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	counter := telemetry.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")
	before := testutil.ToFloat64(counter)

	// When
	for _, path := range []string{"/items/1", "/items/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// Then
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetrics_ImplicitOK(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics)
	router.Get("/plain", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	counter := telemetry.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/plain", "200")
	before := testutil.ToFloat64(counter)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
