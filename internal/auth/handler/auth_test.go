package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/auth/service"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/middleware"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/session"
)

type mockAuthService struct {
	signInFunc func(ctx context.Context, req *service.SignInRequest) (*service.SignInResponse, error)
}

func (m *mockAuthService) SignIn(ctx context.Context, req *service.SignInRequest) (*service.SignInResponse, error) {
	return m.signInFunc(ctx, req)
}

func newRouter(svc service.AuthService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
	router := httprouter.New()
	NewAuthHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"signed in", `{"email":"a@b.uz","password":"secret1"}`, nil, http.StatusOK},
		{"not an admin", `{"email":"a@b.uz","password":"secret1"}`, apperrors.Forbidden("Access denied"), http.StatusForbidden},
		{"bad credentials", `{"email":"a@b.uz","password":"secret1"}`, apperrors.Unauthorized("Invalid email or password"), http.StatusUnauthorized},
		{"malformed body", `{"email":`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				signInFunc: func(ctx context.Context, req *service.SignInRequest) (*service.SignInResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &service.SignInResponse{
						Session: session.Token{Value: "jwt"},
						Admin:   &model.Admin{ID: "uid-1", Email: req.Email},
					}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, SignInPath, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var resp struct {
					Data service.SignInResponse `json:"data"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatal(err)
				}
				if resp.Data.Session.Value != "jwt" || resp.Data.Admin.Email != "a@b.uz" {
					t.Errorf("response = %+v", resp.Data)
				}
			}
		})
	}
}

func TestMe(t *testing.T) {
	router := newRouter(&mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("without admin: expected status 401, got %d", w.Code)
	}

	admin := &model.Admin{ID: "uid-1", Email: "admin@pilavtour.uz"}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithAdmin(req.Context(), admin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "admin@pilavtour.uz") {
		t.Errorf("with admin: status %d body %s", w.Code, w.Body.String())
	}
}
