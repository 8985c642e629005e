package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func serve(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	router := httprouter.New()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec, resp
}

func TestHealth(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
	rec, resp := serve(t, NewHealthHandler(down, nil, log), "/health")
	if rec.Code != http.StatusOK || resp.Status != "ok" {
		t.Errorf("got %d %+v", rec.Code, resp)
	}
}

func TestReady(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})

	tests := []struct {
		name     string
		database PingFunc
		cache    PingFunc
		wantCode int
		want     HealthResponse
	}{
		{"all up", ok, ok, http.StatusOK, HealthResponse{Status: "ready", Database: "ok", Cache: "ok"}},
		{"no cache configured", ok, nil, http.StatusOK, HealthResponse{Status: "ready", Database: "ok"}},
		{"cache down", ok, down, http.StatusOK, HealthResponse{Status: "ready", Database: "ok", Cache: "error"}},
		{"database down", down, ok, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: "error", Cache: "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := serve(t, NewHealthHandler(tt.database, tt.cache, log), "/ready")
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if resp != tt.want {
				t.Errorf("body = %+v, want %+v", resp, tt.want)
			}
		})
	}
}
