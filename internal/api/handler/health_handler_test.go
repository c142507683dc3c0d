package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c := newCall(http.MethodGet, "/health", "")
	body := c.run(t, NewHealthHandler().Liveness)
	expectStatus(t, c, http.StatusOK)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := DependencyCheck{Name: "sqlite", Ping: func(ctx context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Ping: func(ctx context.Context) error { return errors.New("connection refused") }}

	c := newCall(http.MethodGet, "/health/ready", "")
	body := c.run(t, NewHealthHandler(ok).Readiness)
	expectStatus(t, c, http.StatusOK)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}

	c = newCall(http.MethodGet, "/health/ready", "")
	body = c.run(t, NewHealthHandler(ok, down).Readiness)
	expectStatus(t, c, http.StatusServiceUnavailable)
	deps := body["dependencies"].(map[string]any)
	if body["status"] != "degraded" || deps["redis"].(map[string]any)["error"] != "connection refused" || deps["sqlite"].(map[string]any)["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUploaded(t *testing.T) {
	c := newCall(http.MethodPost, "/api/uploads/news", "").as(testUser)
	c.c.Set("stored_files", nil)
	body := c.run(t, Uploaded)
	expectStatus(t, c, http.StatusCreated)
	if body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}
}
