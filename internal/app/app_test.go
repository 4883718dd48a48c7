package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"crew-service/internal/app"
	"crew-service/internal/config"
	"crew-service/testing/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Routes(t *testing.T) {
	cfg := &config.Config{
		Env: "test",
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5,
		},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		NATS:     config.NATSConfig{Subject: "crew.views"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	application, err := app.NewWithConfig(context.Background(), cfg, fixtures.Clock(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { application.Shutdown(context.Background()) })

	router := application.Router()

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"Health", "/health", http.StatusOK},
		{"Ready", "/ready", http.StatusOK},
		{"Countries", "/api/countries", http.StatusOK},
		{"Metadata", "/api/metadata", http.StatusOK},
		{"Astronauts", "/api/astronauts?sort_by=age&order=desc", http.StatusOK},
		{"AstronautZero", "/api/astronauts/0", http.StatusNotFound},
		{"Expeditions", "/api/expeditions", http.StatusOK},
		{"ExpeditionMissing", "/api/expeditions/7", http.StatusNotFound},
		{"UnknownRoute", "/api/students", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("Origin", "https://tracker.example")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("WritesAreNotRouted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/astronauts", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
