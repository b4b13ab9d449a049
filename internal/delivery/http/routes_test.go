package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"entreprenapp/internal/config"

	"go.uber.org/zap"
)

func fallbackRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{
			AuthLimit:  10,
			AuthWindow: time.Minute,
			APILimit:   100,
			APIWindow:  time.Minute,
		},
	}
	return NewRouter(RouterDeps{
		Cfg:     cfg,
		Log:     zap.NewNop().Sugar(),
		Cookies: NewCookieManager(false, 15*time.Minute, 168*time.Hour),
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	router := fallbackRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/definitely/not/a/route", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Success || resp.Message != "route not found" {
		t.Fatalf("envelope = %+v", resp)
	}
}

func TestWrongMethodReturnsEnvelope(t *testing.T) {
	router := fallbackRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Success || resp.Message != "method not allowed" {
		t.Fatalf("envelope = %+v", resp)
	}
}
