package service

import (
	"context"
	"errors"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/relations"
	reviewerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
)

var SortFields = []string{"created_at", "rate"}

const relationConcurrency = 8

type ReviewService interface {
	List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.ReviewView], string, error)
	Delete(ctx context.Context, id string) error
}

type UserReader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type reviewService struct {
	repo     repository.ReviewRepository
	users    UserReader
	sealer   pagination.Sealer
	notifier *changes.Notifier
	cfg      *config.Config
}

func NewReviewService(repo repository.ReviewRepository, users UserReader, notifier *changes.Notifier, cfg *config.Config) ReviewService {
	return &reviewService{
		repo:     repo,
		users:    users,
		sealer:   cfg.Client.Sealer,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *reviewService) List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.ReviewView], string, error) {
	source := pagination.SourceFunc[*model.ReviewView](func(ctx context.Context, q pagination.Query) ([]*model.ReviewView, error) {
		reviews, err := s.repo.Find(ctx, q)
		if err != nil {
			return nil, err
		}
		return s.join(ctx, reviews), nil
	})
	pager := pagination.New[*model.ReviewView](source, reviewKey(spec.SortField), (*model.ReviewView).SearchText, spec)

	page, next, err := pagination.Navigate(ctx, pager, s.sealer, token, nav)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "nav", nav, "mode", pager.Mode(), "error", err)
		return pagination.Page[*model.ReviewView]{}, "", pagination.ToAppError(err)
	}
	return page, next, nil
}

// Delete removes the review. The rating stored on the reviewed tour is left
// as it was.
func (s *reviewService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Review ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, reviewerrors.ErrNotFound):
			return apperrors.NotFoundWithID("Review", id)
		case errors.Is(err, reviewerrors.ErrInvalidID):
			return apperrors.InvalidInput("Invalid review ID format")
		}
		s.cfg.Log.Error("Failed to delete review", "id", id, "error", err)
		return apperrors.Internal("Failed to delete review", err)
	}

	s.cfg.Log.Info("Review deleted successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityReview, id, kafka.ActionDeleted)
	return nil
}

func (s *reviewService) join(ctx context.Context, reviews []*model.Review) []*model.ReviewView {
	ids := make([]string, len(reviews))
	for i, r := range reviews {
		ids[i] = r.UserID
	}
	users := relations.Resolve[model.User](ctx, ids, s.users.FindByID, relationConcurrency, s.cfg.Log, "user")

	views := make([]*model.ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = &model.ReviewView{Review: *r, User: users[r.UserID]}
	}
	return views
}

func reviewKey(field string) pagination.KeyFunc[*model.ReviewView] {
	return func(r *model.ReviewView) pagination.Cursor {
		if field == "rate" {
			return pagination.NumberCursor(r.Rate, r.ID)
		}
		return pagination.TimeCursor(r.CreatedAt, r.ID)
	}
}
