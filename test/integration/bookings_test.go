//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/test/integration/testutil"
)

func TestBookings_GenerateRequiresUsersAndTours(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/bookings/generate", nil)
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

	if n := mongo.CountDocuments(t, "bookings"); n != 0 {
		t.Errorf("bookings written = %d, want 0", n)
	}
}

func TestBookings_GenerateAndList(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	mongo.Insert(t, "users", testutil.UserDocs(3)...)
	createTours(t, client, "Samarkand Classic", "Khiva Weekend")

	resp := client.POST(t, "/api/v1/bookings/generate", nil)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var generated struct {
		Data []model.Booking `json:"data"`
	}
	if err := resp.UnmarshalJSON(&generated); err != nil {
		t.Fatal(err)
	}
	if n := mongo.CountDocuments(t, "bookings"); n != int64(len(generated.Data)) {
		t.Fatalf("stored %d bookings, response has %d", n, len(generated.Data))
	}

	resp = client.GET(t, "/api/v1/bookings?"+url.Values{"page_size": {"100"}}.Encode())
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var page struct {
		Data []model.BookingView `json:"data"`
	}
	if err := resp.UnmarshalJSON(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Data) != len(generated.Data) {
		t.Fatalf("listed %d bookings, want %d", len(page.Data), len(generated.Data))
	}
	for _, row := range page.Data {
		if row.User == nil || row.Tour == nil {
			t.Errorf("booking %s was not joined: user=%v tour=%v", row.ID, row.User, row.Tour)
		}
		if row.TravelDate != nil && row.TravelDate.Before(row.BookingDate) {
			t.Errorf("booking %s travels before it was booked", row.ID)
		}
	}
}

func TestBookings_UpdateStatus(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	mongo.Insert(t, "users", testutil.UserDocs(1)...)
	createTours(t, client, "Bukhara Nights")

	resp := client.POST(t, "/api/v1/bookings/generate", nil)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var generated struct {
		Data []model.Booking `json:"data"`
	}
	if err := resp.UnmarshalJSON(&generated); err != nil {
		t.Fatal(err)
	}
	id := generated.Data[0].ID

	resp = client.PATCH(t, "/api/v1/bookings/id/"+id, map[string]any{"status": "confirmed"})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, `"status":"confirmed"`)

	resp = client.PATCH(t, "/api/v1/bookings/id/"+id, map[string]any{"status": "lost"})
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
}
