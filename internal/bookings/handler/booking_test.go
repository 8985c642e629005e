package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
)

type mockBookingService struct {
	updateFunc func(ctx context.Context, id string, u *model.BookingUpdate) (*model.BookingView, error)
	seedFunc   func(ctx context.Context) ([]*model.Booking, error)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.BookingView, error) {
	return &model.BookingView{Booking: model.Booking{ID: id}}, nil
}

func (m *mockBookingService) List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.BookingView], string, error) {
	return pagination.Page[*model.BookingView]{}, "", nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, u *model.BookingUpdate) (*model.BookingView, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, u)
	}
	return &model.BookingView{}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockBookingService) Seed(ctx context.Context) ([]*model.Booking, error) {
	if m.seedFunc != nil {
		return m.seedFunc(ctx)
	}
	return nil, nil
}

func serve(svc *mockBookingService, method, target, body string) *httptest.ResponseRecorder {
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
	router := httprouter.New()
	NewBookingHandler(svc, log, 10).RegisterRoutes(router)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdate_DecodesPartialBody(t *testing.T) {
	var got *model.BookingUpdate
	svc := &mockBookingService{
		updateFunc: func(ctx context.Context, id string, u *model.BookingUpdate) (*model.BookingView, error) {
			got = u
			return &model.BookingView{Booking: model.Booking{ID: id}}, nil
		},
	}

	w := serve(svc, http.MethodPatch, "/api/v1/bookings/id/b1", `{"status":"confirmed","travel_date":"2024-09-01T00:00:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.Status == nil || *got.Status != model.BookingConfirmed {
		t.Errorf("status = %v", got.Status)
	}
	if got.Notes != nil {
		t.Errorf("notes should be absent, got %q", *got.Notes)
	}
	if got.TravelDate == nil || !got.TravelDate.Equal(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("travel date = %v", got.TravelDate)
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		seedErr  error
		wantCode int
	}{
		{"created", nil, http.StatusCreated},
		{"no users", apperrors.InvalidInput("No users found"), http.StatusBadRequest},
		{"database down", apperrors.Internal("Failed to generate bookings", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				seedFunc: func(ctx context.Context) ([]*model.Booking, error) {
					if tt.seedErr != nil {
						return nil, tt.seedErr
					}
					return []*model.Booking{{ID: "b1"}}, nil
				},
			}

			w := serve(svc, http.MethodPost, "/api/v1/bookings/generate", "")
			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestList_RejectsUnknownSort(t *testing.T) {
	w := serve(&mockBookingService{}, http.MethodGet, "/api/v1/bookings?sort=total_price", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
