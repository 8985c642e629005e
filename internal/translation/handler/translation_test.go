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

	"github.com/Dotlabs-uz/pilavtour-admin/internal/translation/service"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/translate"
)

type mockTranslationService struct {
	proxyFunc func(ctx context.Context, req service.ProxyRequest) (map[locale.Language]string, error)
}

func (m *mockTranslationService) Shape(ctx context.Context, root translate.Node) (translate.Result, error) {
	return translate.Result{}, nil
}

func (m *mockTranslationService) Proxy(ctx context.Context, req service.ProxyRequest) (map[locale.Language]string, error) {
	return m.proxyFunc(ctx, req)
}

func newRouter(svc service.TranslationService) *httprouter.Router {
	router := httprouter.New()
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
	NewTranslationHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestTranslate_Success(t *testing.T) {
	var got service.ProxyRequest
	router := newRouter(&mockTranslationService{
		proxyFunc: func(ctx context.Context, req service.ProxyRequest) (map[locale.Language]string, error) {
			got = req
			return map[locale.Language]string{locale.Russian: "привет"}, nil
		},
	})

	body := `{"text":"hello","targetLanguages":["ru"],"detectLanguage":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got.Text != "hello" || !got.DetectLanguage || len(got.TargetLanguages) != 1 {
		t.Errorf("request = %+v", got)
	}

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data["ru"] != "привет" {
		t.Errorf("data = %v", resp.Data)
	}
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"malformed body", `{"text":`, nil, http.StatusBadRequest},
		{"unknown field", `{"txt":"x"}`, nil, http.StatusBadRequest},
		{"service rejects", `{"text":"x"}`, apperrors.InvalidInput("targetLanguages is required"), http.StatusBadRequest},
		{"not configured", `{"text":"x","targetLanguages":["ru"]}`, apperrors.Unavailable("translation service"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockTranslationService{
				proxyFunc: func(ctx context.Context, req service.ProxyRequest) (map[locale.Language]string, error) {
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
