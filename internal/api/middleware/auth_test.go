package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/core/domain"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRequireUser_AttachesPrincipal(t *testing.T) {
	authz := newStubAuthorizer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")

	var got *domain.Principal
	rec := serve(req, func(c echo.Context) error {
		got = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	}, RequireUser(authz))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got != alice {
		t.Fatalf("principal not attached: %+v", got)
	}
}

func TestRequireUser_AcceptsAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")

	var got *domain.Principal
	rec := serve(req, func(c echo.Context) error {
		got = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	}, RequireUser(newStubAuthorizer()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.Role != domain.RoleAdmin {
		t.Fatalf("expected admin principal, got %+v", got)
	}
}

func TestRequireAdmin_RejectsUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")

	rec := serve(req, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}, RequireAdmin(newStubAuthorizer()))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "admin access required" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestGates_Failures(t *testing.T) {
	cases := []struct {
		name   string
		header []string
		code   int
		msg    string
	}{
		{"missing header", nil, http.StatusUnauthorized, "token required"},
		{"empty header", []string{""}, http.StatusUnauthorized, "invalid token"},
		{"bare scheme", []string{"Bearer "}, http.StatusUnauthorized, "invalid token"},
		{"garbage", []string{"Bearer nope"}, http.StatusUnauthorized, "invalid token"},
		{"expired", []string{"Bearer expired-token"}, http.StatusUnauthorized, "token expired, please log in again"},
		{"unknown subject", []string{"ghost-token"}, http.StatusUnauthorized, "account not found"},
		{"disabled", []string{"bearer disabled-token"}, http.StatusForbidden, "account disabled"},
		{"store failure", []string{"Bearer broken-token"}, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, h := range tc.header {
				req.Header.Add("Authorization", h)
			}

			rec := serve(req, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			}, RequireUser(newStubAuthorizer()))

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			body := decode(t, rec)
			if body["success"] != false || body["message"] != tc.msg {
				t.Fatalf("unexpected body %v", body)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"BEARER  abc ":  "abc",
		"abc":           "abc",
		"  abc  ":       "abc",
		"Bearer":        "",
		"Bearer ":       "",
		"":              "",
		"Bearerabc":     "Bearerabc",
		"Bearer\tabc":   "abc",
		"Token abc":     "Token abc",
		"Bearer a.b.c ": "a.b.c",
	}
	for in, want := range cases {
		if got := bearerToken(in); got != want {
			t.Errorf("bearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		wantUser bool
	}{
		{"anonymous", "", false},
		{"user", "Bearer user-token", true},
		{"admin ignored", "Bearer admin-token", false},
		{"expired swallowed", "Bearer expired-token", false},
		{"garbage swallowed", "Bearer nope", false},
		{"store failure swallowed", "Bearer broken-token", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			called := false
			rec := serve(req, func(c echo.Context) error {
				called = true
				if got := PrincipalFrom(c) != nil; got != tc.wantUser {
					t.Fatalf("principal attached = %v, want %v", got, tc.wantUser)
				}
				return c.NoContent(http.StatusOK)
			}, OptionalAuth(newStubAuthorizer()))

			if !called || rec.Code != http.StatusOK {
				t.Fatalf("expected pass-through, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")

	rec := serve(req, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}, RequireUser(newStubAuthorizer()), RequireRole(domain.RoleUser))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "user access required" {
		t.Fatalf("unexpected message %v", msg)
	}

	req = httptest.NewRequest(http.MethodPut, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec = serve(req, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireUser(newStubAuthorizer()), RequireRole(domain.RoleUser))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRequireRole_WithoutGate(t *testing.T) {
	rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}, RequireRole(domain.RoleUser))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
