package model

import "time"

type Review struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required"`
	Rate      float64   `json:"rate" bson:"rate" validate:"gte=0,lte=5"`
	Comment   string    `json:"comment" bson:"comment"`
	TourID    string    `json:"tour_id,omitempty" bson:"tour_id,omitempty"`
	ArticleID string    `json:"article_id,omitempty" bson:"article_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type ReviewView struct {
	Review
	User *User `json:"user,omitempty"`
}

func (r *ReviewView) SearchText() []string {
	out := []string{r.Comment}
	if r.User != nil {
		out = append(out, r.User.Name)
	}
	return out
}
