package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

func TestAdminHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		adminLoginFn: func(ctx context.Context, username, password string) (*ports.Session, error) {
			if username != "root" || password != "hunter22" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.Session{Token: "admin-tok", Principal: testAdmin}, nil
		},
	}
	handler := NewAdminHandler(stub, nil)

	c := newCall(http.MethodPost, "/api/admin/login", `{"username":"root","password":"hunter22"}`)
	body := c.run(t, handler.Login)
	expectStatus(t, c, http.StatusOK)
	if body["token"] != "admin-tok" || body["user"].(map[string]any)["role"] != "admin" {
		t.Fatalf("unexpected body %v", body)
	}

	c = newCall(http.MethodPost, "/api/admin/login", `{"username":"root"}`)
	body = c.run(t, handler.Login)
	expectFailure(t, c, body, http.StatusBadRequest, "password is required")
}

func TestAdminHandler_ListUsers(t *testing.T) {
	stub := &stubAuthService{
		listUsersFn: func(ctx context.Context, page ports.Page) ([]*domain.User, int64, error) {
			if page.Page != 2 || page.PerPage != 100 {
				t.Fatalf("unexpected page %+v", page)
			}
			return []*domain.User{{ID: 3, Name: "Cara", IsActive: true}}, 101, nil
		},
	}

	c := newCall(http.MethodGet, "/api/admin/users?page=2&per_page=500", "").as(testAdmin)
	body := c.run(t, NewAdminHandler(stub, nil).ListUsers)
	expectStatus(t, c, http.StatusOK)

	pagination := body["pagination"].(map[string]any)
	if pagination["total"] != float64(101) || pagination["total_pages"] != float64(2) || pagination["per_page"] != float64(100) {
		t.Fatalf("unexpected pagination %v", pagination)
	}
	if users := body["users"].([]any); len(users) != 1 {
		t.Fatalf("unexpected users %v", users)
	}
}

func TestAdminHandler_SetUserStatus(t *testing.T) {
	stub := &stubAuthService{
		setActiveFn: func(ctx context.Context, actor *domain.Principal, userID int64, active bool) (*domain.User, error) {
			if actor != testAdmin || userID != 3 || active {
				t.Fatalf("unexpected call %v %d %v", actor, userID, active)
			}
			return &domain.User{ID: 3, IsActive: false}, nil
		},
	}
	handler := NewAdminHandler(stub, nil)

	c := newCall(http.MethodPatch, "/api/admin/users/3/status", `{"active":false}`).as(testAdmin).param("id", "3")
	body := c.run(t, handler.SetUserStatus)
	expectStatus(t, c, http.StatusOK)
	if body["user"].(map[string]any)["is_active"] != false {
		t.Fatalf("unexpected body %v", body)
	}

	c = newCall(http.MethodPatch, "/api/admin/users/3/status", `{}`).as(testAdmin).param("id", "3")
	body = c.run(t, handler.SetUserStatus)
	expectFailure(t, c, body, http.StatusBadRequest, "active is required")

	c = newCall(http.MethodPatch, "/api/admin/users/x/status", `{"active":true}`).as(testAdmin).param("id", "x")
	body = c.run(t, handler.SetUserStatus)
	expectFailure(t, c, body, http.StatusBadRequest, "id must be a positive integer")
}

func TestAdminHandler_Audit(t *testing.T) {
	c := newCall(http.MethodGet, "/api/admin/audit", "").as(testAdmin)
	body := c.run(t, NewAdminHandler(&stubAuthService{}, nil).Audit)
	expectFailure(t, c, body, http.StatusServiceUnavailable, "audit trail is not configured")

	reader := &stubAuditReader{}
	c = newCall(http.MethodGet, "/api/admin/audit?action=auth.login&limit=9999", "").as(testAdmin)
	body = c.run(t, NewAdminHandler(&stubAuthService{}, reader).Audit)
	expectStatus(t, c, http.StatusOK)
	if reader.action != "auth.login" || reader.limit != maxAuditLimit {
		t.Fatalf("unexpected query %q %d", reader.action, reader.limit)
	}
	entries := body["entries"].([]any)
	if len(entries) != 1 || entries[0].(map[string]any)["action"] != "auth.login" {
		t.Fatalf("unexpected entries %v", entries)
	}

	c = newCall(http.MethodGet, "/api/admin/audit?limit=abc", "").as(testAdmin)
	c.run(t, NewAdminHandler(&stubAuthService{}, reader).Audit)
	if reader.limit != defaultAuditLimit {
		t.Fatalf("expected default limit, got %d", reader.limit)
	}
}
