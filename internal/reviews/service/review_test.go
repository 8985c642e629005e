package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	reviewerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/client"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sealer"
)

type mockReviewRepository struct {
	findFunc   func(ctx context.Context, q pagination.Query) ([]*model.Review, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockReviewRepository) Find(ctx context.Context, q pagination.Query) ([]*model.Review, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, q)
	}
	return []*model.Review{}, nil
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type userDirectory map[string]*model.User

func (d userDirectory) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := d[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func newTestService(t *testing.T, repo *mockReviewRepository, users userDirectory) ReviewService {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})

	key, err := sealer.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	s, err := sealer.New(key)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Log: log, Client: &client.Client{Sealer: s}}
	return NewReviewService(repo, users, changes.NewNotifier(kafka.NopPublisher{}, log), cfg)
}

func TestList_JoinsUserAndFilters(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	reviews := []*model.Review{
		{ID: "r1", UserID: "u1", Rate: 5, Comment: "Amazing plov", TourID: "t1", CreatedAt: now},
		{ID: "r2", UserID: "u2", Rate: 3, Comment: "Long bus ride", TourID: "t1", CreatedAt: now.Add(-time.Hour)},
		{ID: "r3", UserID: "deleted", Rate: 4, Comment: "Great guide", TourID: "t1", CreatedAt: now.Add(-2 * time.Hour)},
	}
	users := userDirectory{
		"u1": {ID: "u1", Name: "Dilnoza"},
		"u2": {ID: "u2", Name: "Marco"},
	}

	var query pagination.Query
	repo := &mockReviewRepository{
		findFunc: func(ctx context.Context, q pagination.Query) ([]*model.Review, error) {
			query = q
			return reviews, nil
		},
	}
	svc := newTestService(t, repo, users)

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"r1", "r2", "r3"}},
		{"marco", []string{"r2"}},
		{"GUIDE", []string{"r3"}},
		{"plov", []string{"r1"}},
	}

	for _, tt := range tests {
		t.Run("filter="+tt.filter, func(t *testing.T) {
			spec := pagination.Spec{PageSize: 10, TextFilter: tt.filter, Equality: map[string]string{"tour_id": "t1"}}
			page, _, err := svc.List(context.Background(), spec, "", pagination.NavFirst)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if query.Equality["tour_id"] != "t1" {
				t.Errorf("equality not passed down: %v", query.Equality)
			}

			var got []string
			for _, r := range page.Items {
				got = append(got, r.ID)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			for _, r := range page.Items {
				if r.UserID == "deleted" && r.User != nil {
					t.Error("missing user should render as nil")
				}
				if r.UserID == "u1" && (r.User == nil || r.User.Name != "Dilnoza") {
					t.Errorf("user not joined for %s", r.ID)
				}
			}
		})
	}
}

func TestList_SortByRate(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	// Highest rate first, ties broken by id.
	reviews := []*model.Review{
		{ID: "r5", UserID: "u1", Rate: 5, CreatedAt: now},
		{ID: "r4", UserID: "u1", Rate: 4, CreatedAt: now.Add(time.Hour)},
		{ID: "r3", UserID: "u1", Rate: 4, CreatedAt: now.Add(2 * time.Hour)},
		{ID: "r1", UserID: "u1", Rate: 1, CreatedAt: now.Add(3 * time.Hour)},
		{ID: "r0", UserID: "u1", Rate: 0.5, CreatedAt: now.Add(4 * time.Hour)},
	}

	var queries []pagination.Query
	repo := &mockReviewRepository{
		findFunc: func(ctx context.Context, q pagination.Query) ([]*model.Review, error) {
			queries = append(queries, q)
			var out []*model.Review
			for _, r := range reviews {
				if q.After != nil {
					if r.Rate > q.After.Number || (r.Rate == q.After.Number && r.ID >= q.After.ID) {
						continue
					}
				}
				out = append(out, r)
				if q.Limit > 0 && len(out) == q.Limit {
					break
				}
			}
			return out, nil
		},
	}
	svc := newTestService(t, repo, userDirectory{"u1": {ID: "u1", Name: "Dilnoza"}})
	spec := pagination.Spec{SortField: "rate", PageSize: 2}

	var pages [][]string
	token, nav := "", pagination.NavFirst
	for {
		page, next, err := svc.List(context.Background(), spec, token, nav)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		var ids []string
		for _, r := range page.Items {
			ids = append(ids, r.ID)
		}
		pages = append(pages, ids)
		if !page.HasNext {
			break
		}
		token, nav = next, pagination.NavNext
	}

	if fmt.Sprint(pages) != "[[r5 r4] [r3 r1] [r0]]" {
		t.Errorf("pages = %v", pages)
	}
	for _, q := range queries[1:] {
		if q.SortField != "rate" || q.After == nil || q.After.Kind != pagination.NumberKind {
			t.Errorf("next page should anchor on the rate, got %+v", q)
		}
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"deleted", nil, ""},
		{"not found", reviewerrors.ErrNotFound, apperrors.CodeNotFound},
		{"invalid id", reviewerrors.ErrInvalidID, apperrors.CodeInvalidInput},
		{"database down", errors.New("boom"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &mockReviewRepository{
				deleteFunc: func(ctx context.Context, id string) error { return tt.repoErr },
			}, userDirectory{})

			err := svc.Delete(context.Background(), "665f1c2e8b3f4a0012345678")
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Delete() error = %v", err)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("Delete() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
