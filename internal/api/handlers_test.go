package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SreekarSamrudh/e-shop-central/internal/checkout"
	"github.com/SreekarSamrudh/e-shop-central/internal/services"
)

func TestHealthHandler(t *testing.T) {
	app := &App{}

	rec := httptest.NewRecorder()
	app.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRespondServiceErrorMapping(t *testing.T) {
	app := &App{}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"empty cart", services.ErrEmptyCart, http.StatusConflict},
		{"out of stock", services.ErrOutOfStock, http.StatusConflict},
		{"email taken", services.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", services.ErrBadCredentials, http.StatusUnauthorized},
		{"invalid transition", services.ErrInvalidTransition, http.StatusBadRequest},
		{"invalid rating", services.ErrInvalidRating, http.StatusBadRequest},
		{"quantity too low", checkout.ErrQuantityTooLow, http.StatusBadRequest},
		{"wrapped sentinel", errors.New("wrapped: " + services.ErrNotFound.Error()), http.StatusInternalServerError},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.respondServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])

			if tt.status == http.StatusInternalServerError {
				// internal errors never leak to the client
				assert.Equal(t, "something went wrong", body["error"])
			}
		})
	}
}

func TestRespondServiceErrorUnwrapsFmtErrors(t *testing.T) {
	app := &App{}

	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("context"), services.ErrNotFound)
	app.respondServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
