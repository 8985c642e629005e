package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/validator"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/relations"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sanitizer"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"
)

var SortFields = []string{"created_at", "booking_date", "updated_at"}

// relationConcurrency bounds the second reads made per list page.
const relationConcurrency = 8

type BookingService interface {
	GetByID(ctx context.Context, id string) (*model.BookingView, error)
	List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.BookingView], string, error)
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.BookingView, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) ([]*model.Booking, error)
}

type UserReader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Find(ctx context.Context, q pagination.Query) ([]*model.User, error)
}

type TourReader interface {
	FindByID(ctx context.Context, id string) (*model.Tour, error)
	Find(ctx context.Context, q pagination.Query) ([]*model.Tour, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	users     UserReader
	tours     TourReader
	validator *validator.BookingValidator
	sealer    pagination.Sealer
	notifier  *changes.Notifier
	seeder    *seeder
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	users UserReader,
	tours TourReader,
	validator *validator.BookingValidator,
	notifier *changes.Notifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		users:     users,
		tours:     tours,
		validator: validator,
		sealer:    cfg.Client.Sealer,
		notifier:  notifier,
		seeder:    newSeeder(cfg.SeedBookingCount),
		cfg:       cfg,
		now:       mongodb.Now,
	}
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.BookingView, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	return s.join(ctx, []*model.Booking{booking})[0], nil
}

func (s *bookingService) List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.BookingView], string, error) {
	if status, ok := spec.Equality["status"]; ok && !model.BookingStatus(status).Valid() {
		return pagination.Page[*model.BookingView]{}, "", apperrors.InvalidInput("Invalid booking status: " + status)
	}

	source := pagination.SourceFunc[*model.BookingView](func(ctx context.Context, q pagination.Query) ([]*model.BookingView, error) {
		bookings, err := s.repo.Find(ctx, q)
		if err != nil {
			return nil, err
		}
		return s.join(ctx, bookings), nil
	})
	pager := pagination.New[*model.BookingView](source, bookingKey(spec.SortField), (*model.BookingView).SearchText, spec)

	page, next, err := pagination.Navigate(ctx, pager, s.sealer, token, nav)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings",
			"nav", nav,
			"mode", pager.Mode(),
			"error", err,
		)
		return pagination.Page[*model.BookingView]{}, "", pagination.ToAppError(err)
	}
	return page, next, nil
}

func (s *bookingService) Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.BookingView, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if update == nil || (update.Status == nil && update.Notes == nil && update.TravelDate == nil) {
		return nil, apperrors.InvalidInput(bookingserrors.ErrEmptyUpdate.Error())
	}
	if update.Notes != nil {
		notes := sanitizer.NormalizeNotes(*update.Notes)
		update.Notes = &notes
	}

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, validation.AsAppError(err, "Booking validation failed")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check booking existence")
	}
	if err := s.validator.ValidateMerged(existing, update); err != nil {
		return nil, validation.AsAppError(err, "Booking validation failed")
	}

	updatedAt := s.now()
	if !updatedAt.After(existing.UpdatedAt) {
		updatedAt = existing.UpdatedAt.Add(time.Millisecond)
	}

	booking, err := s.repo.Update(ctx, id, update, updatedAt)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update booking")
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "status", booking.Status)
	s.notifier.Notify(ctx, changes.EntityBooking, id, kafka.ActionUpdated)
	return s.join(ctx, []*model.Booking{booking})[0], nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete booking")
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityBooking, id, kafka.ActionDeleted)
	return nil
}

// join resolves the user and tour of every booking. Both relation kinds are
// fetched at the same time; a relation that fails to load is left nil.
func (s *bookingService) join(ctx context.Context, bookings []*model.Booking) []*model.BookingView {
	userIDs := make([]string, len(bookings))
	tourIDs := make([]string, len(bookings))
	for i, b := range bookings {
		userIDs[i] = b.UserID
		tourIDs[i] = b.TourID
	}

	var (
		wg    sync.WaitGroup
		users map[string]*model.User
		tours map[string]*model.Tour
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		users = relations.Resolve[model.User](ctx, userIDs, s.users.FindByID, relationConcurrency, s.cfg.Log, "user")
	}()
	go func() {
		defer wg.Done()
		tours = relations.Resolve[model.Tour](ctx, tourIDs, s.tours.FindByID, relationConcurrency, s.cfg.Log, "tour")
	}()
	wg.Wait()

	views := make([]*model.BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = &model.BookingView{
			Booking: *b,
			User:    users[b.UserID],
			Tour:    tours[b.TourID],
		}
	}
	return views
}

func (s *bookingService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func bookingKey(field string) pagination.KeyFunc[*model.BookingView] {
	return func(b *model.BookingView) pagination.Cursor {
		switch field {
		case "booking_date":
			return pagination.TimeCursor(b.BookingDate, b.ID)
		case "updated_at":
			return pagination.TimeCursor(b.UpdatedAt, b.ID)
		}
		return pagination.TimeCursor(b.CreatedAt, b.ID)
	}
}
