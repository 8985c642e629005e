package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	tourerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/tours/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/tours/validator"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sanitizer"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/translate"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"
)

var SortFields = []string{"created_at", "updated_at", "price"}

type TourService interface {
	Create(ctx context.Context, in *model.TourInput) (*model.Tour, error)
	GetByID(ctx context.Context, id string) (*model.Tour, error)
	List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.Tour], string, error)
	Update(ctx context.Context, id string, in *model.TourInput) (*model.Tour, error)
	Delete(ctx context.Context, id string) error
}

// Translator turns a form payload's text fields into multi-language text.
type Translator interface {
	Shape(ctx context.Context, root translate.Node) (translate.Result, error)
}

type tourService struct {
	repo       repository.TourRepository
	validator  *validator.TourValidator
	translator Translator
	sealer     pagination.Sealer
	notifier   *changes.Notifier
	cfg        *config.Config
	now        func() time.Time
}

func NewTourService(
	repo repository.TourRepository,
	validator *validator.TourValidator,
	translator Translator,
	notifier *changes.Notifier,
	cfg *config.Config,
) TourService {
	return &tourService{
		repo:       repo,
		validator:  validator,
		translator: translator,
		sealer:     cfg.Client.Sealer,
		notifier:   notifier,
		cfg:        cfg,
		now:        mongodb.Now,
	}
}

func (s *tourService) Create(ctx context.Context, in *model.TourInput) (*model.Tour, error) {
	tour, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tour.CreatedAt = now
	tour.UpdatedAt = now

	if err := s.repo.Create(ctx, tour); err != nil {
		s.cfg.Log.Error("Failed to create tour", "error", err)
		return nil, apperrors.Internal("Failed to create tour", err)
	}

	s.cfg.Log.Info("Tour created successfully", "id", tour.ID, "style", tour.Style)
	s.notifier.Notify(ctx, changes.EntityTour, tour.ID, kafka.ActionCreated)
	return tour, nil
}

func (s *tourService) GetByID(ctx context.Context, id string) (*model.Tour, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tour ID cannot be empty")
	}

	tour, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve tour")
	}
	return tour, nil
}

func (s *tourService) List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.Tour], string, error) {
	pager := pagination.New[*model.Tour](s.repo, tourKey(spec.SortField), (*model.Tour).SearchText, spec)

	page, next, err := pagination.Navigate(ctx, pager, s.sealer, token, nav)
	if err != nil {
		s.cfg.Log.Error("Failed to list tours",
			"nav", nav,
			"mode", pager.Mode(),
			"error", err,
		)
		return pagination.Page[*model.Tour]{}, "", pagination.ToAppError(err)
	}
	return page, next, nil
}

// Update overwrites the whole tour. The creation time is kept and the
// update time always moves forward.
func (s *tourService) Update(ctx context.Context, id string, in *model.TourInput) (*model.Tour, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Tour ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check tour existence")
	}

	tour, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}

	tour.ID = existing.ID
	tour.CreatedAt = existing.CreatedAt
	tour.UpdatedAt = s.now()
	if !tour.UpdatedAt.After(existing.UpdatedAt) {
		tour.UpdatedAt = existing.UpdatedAt.Add(time.Millisecond)
	}

	if err := s.repo.Replace(ctx, id, tour); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update tour")
	}

	s.cfg.Log.Info("Tour updated successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityTour, id, kafka.ActionUpdated)
	return tour, nil
}

func (s *tourService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Tour ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete tour")
	}

	s.cfg.Log.Info("Tour deleted successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityTour, id, kafka.ActionDeleted)
	return nil
}

// build validates the form, translates its text and assembles the tour.
// Nothing is written when translation fails.
func (s *tourService) build(ctx context.Context, in *model.TourInput) (*model.Tour, error) {
	if in == nil {
		return nil, apperrors.InvalidInput("Tour payload is required")
	}
	s.sanitize(in)

	if err := s.validator.ValidateInput(in); err != nil {
		s.cfg.Log.Warn("Tour validation failed", "error", err)
		return nil, validation.AsAppError(err, "Tour validation failed")
	}

	res, err := s.translator.Shape(ctx, tourNode(in))
	if err != nil {
		return nil, err
	}

	tour := assemble(in, &res)
	if err := s.validator.Validate(tour); err != nil {
		s.cfg.Log.Warn("Translated tour failed validation", "error", err)
		return nil, validation.AsAppError(err, "Tour validation failed")
	}
	return tour, nil
}

func (s *tourService) sanitize(in *model.TourInput) {
	in.Price = strings.TrimSpace(in.Price)
	in.ItineraryImage = strings.TrimSpace(in.ItineraryImage)
	in.Images = sanitizer.NormalizeURLs(in.Images)
}

func (s *tourService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, tourerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Tour", id)
	case errors.Is(err, tourerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid tour ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func tourKey(field string) pagination.KeyFunc[*model.Tour] {
	return func(t *model.Tour) pagination.Cursor {
		switch field {
		case "price":
			return pagination.NumberCursor(t.PriceValue, t.ID)
		case "updated_at":
			return pagination.TimeCursor(t.UpdatedAt, t.ID)
		}
		return pagination.TimeCursor(t.CreatedAt, t.ID)
	}
}
