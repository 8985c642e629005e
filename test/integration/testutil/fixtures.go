package testutil

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AdminDoc() bson.M {
	now := time.Now().UTC()
	return bson.M{
		"_id":        AdminUID,
		"email":      AdminEmail,
		"created_at": now,
		"updated_at": now,
	}
}

// TourInput is a create payload with every text field already localized, so
// it needs no translation provider.
func TourInput(title string) map[string]any {
	return map[string]any{
		"title":       map[string]string{"en": title, "ru": title, "uz": title},
		"description": map[string]string{"en": "Old town walk"},
		"location":    map[string]string{"en": "Bukhara"},
		"price":       "250",
		"style":       "Standart",
		"duration":    map[string]int{"days": 3, "nights": 2},
		"rating":      4.5,
		"itinerary":   []any{},
		"dates":       []any{},
		"images":      []string{},
	}
}

// UserDocs builds n regular users with ascending created_at.
func UserDocs(n int) []any {
	base := time.Now().UTC().Add(-time.Duration(n) * time.Hour)
	docs := make([]any, 0, n)
	for i := range n {
		docs = append(docs, bson.M{
			"_id":        primitive.NewObjectID(),
			"email":      fmt.Sprintf("user%02d@pilavtour.uz", i),
			"name":       fmt.Sprintf("User %02d", i),
			"role":       "user",
			"created_at": base.Add(time.Duration(i) * time.Hour),
		})
	}
	return docs
}
