package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

type Booking struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         string        `json:"user_id" bson:"user_id" validate:"required"`
	TourID         string        `json:"tour_id" bson:"tour_id" validate:"required"`
	Status         BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	NumberOfPeople int           `json:"number_of_people" bson:"number_of_people" validate:"min=1"`
	TotalPrice     string        `json:"total_price" bson:"total_price"`
	BookingDate    time.Time     `json:"booking_date" bson:"booking_date" validate:"required"`
	TravelDate     *time.Time    `json:"travel_date,omitempty" bson:"travel_date,omitempty"`
	Notes          string        `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=2000"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

type BookingUpdate struct {
	Status     *BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes      *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
	TravelDate *time.Time     `json:"travel_date,omitempty"`
}

// BookingView is a booking with its user and tour resolved. A relation
// that could not be resolved is left nil.
type BookingView struct {
	Booking
	User *User `json:"user,omitempty"`
	Tour *Tour `json:"tour,omitempty"`
}

func (b *BookingView) SearchText() []string {
	if b.User == nil {
		return nil
	}
	return []string{b.User.Name, b.User.Email}
}
