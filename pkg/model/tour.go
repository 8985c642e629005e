package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TourStyle string

const (
	StylePremium  TourStyle = "Premium"
	StyleEconom   TourStyle = "Econom"
	StyleStandart TourStyle = "Standart"
	StyleLux      TourStyle = "Lux"
)

type DateStatus string

const (
	DateAvailable DateStatus = "Available"
	DateFewSpots  DateStatus = "Few spots"
	DateSoldOut   DateStatus = "Sold out"
)

type Duration struct {
	Days   int `json:"days" bson:"days" validate:"min=1,max=365"`
	Nights int `json:"nights" bson:"nights" validate:"min=0,max=365"`
}

type ItineraryDay struct {
	Title              MultiLangText   `json:"title" bson:"title"`
	Description        MultiLangText   `json:"description" bson:"description"`
	Accommodation      []MultiLangText `json:"accommodation" bson:"accommodation"`
	Meals              []MultiLangText `json:"meals" bson:"meals"`
	IncludedActivities []MultiLangText `json:"included_activities" bson:"included_activities"`
	OptionalActivities []MultiLangText `json:"optional_activities" bson:"optional_activities"`
	SpecialInformation MultiLangText   `json:"special_information" bson:"special_information"`
}

type TourDate struct {
	StartDate time.Time  `json:"start_date" bson:"start_date" validate:"required"`
	EndDate   time.Time  `json:"end_date" bson:"end_date" validate:"required,gtefield=StartDate"`
	Status    DateStatus `json:"status" bson:"status" validate:"required,date_status"`
	Price     string     `json:"price" bson:"price" validate:"required,decimal"`
}

type Inclusions struct {
	Included    []MultiLangText `json:"included" bson:"included"`
	NotIncluded []MultiLangText `json:"not_included" bson:"not_included"`
}

type Tour struct {
	ID             string         `json:"id,omitempty" bson:"_id,omitempty"`
	Title          MultiLangText  `json:"title" bson:"title" validate:"multilang"`
	Description    MultiLangText  `json:"description" bson:"description"`
	Location       MultiLangText  `json:"location" bson:"location"`
	Price          string         `json:"price" bson:"price" validate:"required,decimal"`
	PriceValue     float64        `json:"-" bson:"price_value"`
	Style          TourStyle      `json:"style" bson:"style" validate:"required,tour_style"`
	Duration       Duration       `json:"duration" bson:"duration"`
	Rating         float64        `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	MaxGroupCount  *int           `json:"max_group_count,omitempty" bson:"max_group_count,omitempty" validate:"omitempty,min=1"`
	Itinerary      []ItineraryDay `json:"itinerary" bson:"itinerary"`
	ItineraryImage string         `json:"itinerary_image,omitempty" bson:"itinerary_image,omitempty" validate:"omitempty,url"`
	Dates          []TourDate     `json:"dates" bson:"dates" validate:"dive"`
	Inclusions     Inclusions     `json:"inclusions" bson:"inclusions"`
	Images         []string       `json:"images" bson:"images" validate:"dive,url"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}

// TourInput is the create/edit form payload. Text fields are translated
// before the tour is written.
type TourInput struct {
	Title          TextInput           `json:"title" validate:"text_required"`
	Description    TextInput           `json:"description"`
	Location       TextInput           `json:"location"`
	Price          string              `json:"price" validate:"required,decimal"`
	Style          TourStyle           `json:"style" validate:"required,tour_style"`
	Duration       Duration            `json:"duration"`
	Rating         float64             `json:"rating" validate:"gte=0,lte=5"`
	MaxGroupCount  *int                `json:"max_group_count,omitempty" validate:"omitempty,min=1"`
	Itinerary      []ItineraryDayInput `json:"itinerary" validate:"dive"`
	ItineraryImage string              `json:"itinerary_image,omitempty" validate:"omitempty,url"`
	Dates          []TourDate          `json:"dates" validate:"dive"`
	Inclusions     InclusionsInput     `json:"inclusions"`
	Images         []string            `json:"images" validate:"dive,url"`
}

type ItineraryDayInput struct {
	Title              TextInput   `json:"title" validate:"text_required"`
	Description        TextInput   `json:"description"`
	Accommodation      []TextInput `json:"accommodation"`
	Meals              []TextInput `json:"meals"`
	IncludedActivities []TextInput `json:"included_activities"`
	OptionalActivities []TextInput `json:"optional_activities"`
	SpecialInformation TextInput   `json:"special_information"`
}

type InclusionsInput struct {
	Included    []TextInput `json:"included"`
	NotIncluded []TextInput `json:"not_included"`
}

// SearchText is matched by the list filter.
func (t *Tour) SearchText() []string {
	return []string{t.Title.En, t.Title.Uz, t.Title.Ru}
}

// PriceAmount is the numeric value of a decimal price string, used to order
// tours by price. An unparsable price counts as zero.
func PriceAmount(price string) float64 {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
