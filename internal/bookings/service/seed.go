package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	seedBookingWindow = 90 * 24 * time.Hour
	seedTravelWindow  = 60 * 24 * time.Hour
	seedMaxPeople     = 5
)

var fallbackUnitPrice = decimal.NewFromInt(100)

// seedNotes are drawn uniformly; the empty entries leave a booking without
// notes.
var seedNotes = []string{
	"Хочу забронировать номер с видом на море",
	"Нужна помощь с визой",
	"Предпочитаю утренние рейсы",
	"Вегетарианское питание",
	"Путешествую с детьми",
	"Нужен трансфер из аэропорта",
	"Особые требования к размещению",
	"",
	"",
	"",
}

type seeder struct {
	count   int
	newRand func() *rand.Rand
}

func newSeeder(count int) *seeder {
	return &seeder{
		count: count,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// generate builds count bookings for random (user, tour) pairs.
func (sd *seeder) generate(users []*model.User, tours []*model.Tour, now time.Time) []*model.Booking {
	rng := sd.newRand()
	out := make([]*model.Booking, sd.count)
	for i := range out {
		user := users[rng.IntN(len(users))]
		tour := tours[rng.IntN(len(tours))]
		people := rng.IntN(seedMaxPeople) + 1

		bookedAt := now.Add(-time.Duration(rng.Int64N(int64(seedBookingWindow)))).Truncate(time.Millisecond)
		travel := bookedAt.Add(time.Duration(rng.Int64N(int64(seedTravelWindow) + 1))).Truncate(time.Millisecond)

		out[i] = &model.Booking{
			UserID:         user.ID,
			TourID:         tour.ID,
			Status:         model.BookingStatuses[rng.IntN(len(model.BookingStatuses))],
			NumberOfPeople: people,
			TotalPrice:     totalPrice(tour.Price, people),
			BookingDate:    bookedAt,
			TravelDate:     &travel,
			Notes:          seedNotes[rng.IntN(len(seedNotes))],
			CreatedAt:      bookedAt,
			UpdatedAt:      bookedAt,
		}
	}
	return out
}

// totalPrice formats unit × people as "X.XX USD". A price that does not
// parse, or is not positive, counts as 100.
func totalPrice(price string, people int) string {
	unit := fallbackUnitPrice
	if fields := strings.Fields(price); len(fields) > 0 {
		if d, err := decimal.NewFromString(fields[0]); err == nil && d.IsPositive() {
			unit = d
		}
	}
	return unit.Mul(decimal.NewFromInt(int64(people))).StringFixed(2) + " USD"
}

// Seed writes a batch of random bookings in one transaction. A server
// without transactions gets a single ordered insert instead.
func (s *bookingService) Seed(ctx context.Context) ([]*model.Booking, error) {
	users, err := s.users.Find(ctx, pagination.Query{})
	if err != nil {
		s.cfg.Log.Error("Failed to load users for seeding", "error", err)
		return nil, apperrors.Internal("Failed to load users", err)
	}
	if len(users) == 0 {
		return nil, apperrors.InvalidInput("No users found in the database. Please create some users first.")
	}

	tours, err := s.tours.Find(ctx, pagination.Query{})
	if err != nil {
		s.cfg.Log.Error("Failed to load tours for seeding", "error", err)
		return nil, apperrors.Internal("Failed to load tours", err)
	}
	if len(tours) == 0 {
		return nil, apperrors.InvalidInput("No tours found in the database. Please create some tours first.")
	}

	bookings := s.seeder.generate(users, tours, s.now())
	for _, b := range bookings {
		if err := s.validator.Validate(b); err != nil {
			return nil, validation.AsAppError(err, "Generated booking failed validation")
		}
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, b := range bookings {
			b.ID = ""
			if err := s.repo.Create(sessCtx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, mongodb.ErrTransactionsUnsupported) {
		s.cfg.Log.Warn("Transactions unsupported, seeding with an ordered insert")
		for _, b := range bookings {
			b.ID = ""
		}
		err = s.repo.CreateMany(ctx, bookings)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to seed bookings", "error", err)
		return nil, apperrors.Internal("Failed to generate bookings", err)
	}

	s.cfg.Log.Info("Bookings seeded successfully",
		"count", len(bookings),
		"users", len(users),
		"tours", len(tours),
	)
	for _, b := range bookings {
		s.notifier.Notify(ctx, changes.EntityBooking, b.ID, kafka.ActionSeeded)
	}
	return bookings, nil
}
