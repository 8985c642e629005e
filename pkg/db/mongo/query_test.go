package mongo

import (
	"testing"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildCursorQuery_FirstPage(t *testing.T) {
	filter, opts := BuildCursorQuery(pagination.Query{
		Direction: pagination.Desc,
		Equality:  map[string]string{"status": "pending"},
		Limit:     11,
	})

	if filter["status"] != "pending" {
		t.Errorf("expected equality filter, got %v", filter)
	}
	if _, ok := filter["$or"]; ok {
		t.Error("first page must not carry a cursor condition")
	}
	if opts.Limit == nil || *opts.Limit != 11 {
		t.Errorf("expected limit 11, got %v", opts.Limit)
	}

	sort := opts.Sort.(bson.D)
	if sort[0].Key != "created_at" || sort[0].Value != -1 || sort[1].Key != "_id" || sort[1].Value != -1 {
		t.Errorf("unexpected sort %v", sort)
	}
}

func TestBuildCursorQuery_Anchors(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	oid := primitive.NewObjectID()
	c := pagination.TimeCursor(at, oid.Hex())
	cursor := &c

	tests := []struct {
		name      string
		q         pagination.Query
		wantOp    string
		wantOrder int
	}{
		{"after desc", pagination.Query{Direction: pagination.Desc, After: cursor}, "$lt", -1},
		{"after asc", pagination.Query{Direction: pagination.Asc, After: cursor}, "$gt", 1},
		{"before desc", pagination.Query{Direction: pagination.Desc, Before: cursor}, "$gt", 1},
		{"before asc", pagination.Query{Direction: pagination.Asc, Before: cursor}, "$lt", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, opts := BuildCursorQuery(tt.q)

			or, ok := filter["$or"].(bson.A)
			if !ok || len(or) != 2 {
				t.Fatalf("expected two-branch $or, got %v", filter["$or"])
			}

			strict := or[0].(bson.M)["created_at"].(bson.M)
			if _, ok := strict[tt.wantOp]; !ok {
				t.Errorf("expected %s on sort field, got %v", tt.wantOp, strict)
			}

			tie := or[1].(bson.M)
			if tie["created_at"] != at {
				t.Errorf("tie branch should match the sort value exactly, got %v", tie["created_at"])
			}
			idCond := tie["_id"].(bson.M)
			if idCond[tt.wantOp] != oid {
				t.Errorf("tie branch should compare _id with %s, got %v", tt.wantOp, idCond)
			}

			sort := opts.Sort.(bson.D)
			if sort[0].Value != tt.wantOrder {
				t.Errorf("expected order %d, got %v", tt.wantOrder, sort[0].Value)
			}
			if opts.Limit != nil {
				t.Errorf("limit 0 should not be set, got %d", *opts.Limit)
			}
		})
	}
}

func TestBuildCursorQuery_NumericAnchor(t *testing.T) {
	oid := primitive.NewObjectID()
	c := pagination.NumberCursor(149.5, oid.Hex())

	filter, opts := BuildCursorQuery(pagination.Query{
		SortField: "price_value",
		Direction: pagination.Asc,
		After:     &c,
		Limit:     6,
	})

	or := filter["$or"].(bson.A)
	strict := or[0].(bson.M)["price_value"].(bson.M)
	if strict["$gt"] != 149.5 {
		t.Errorf("expected numeric $gt anchor, got %v", strict)
	}
	tie := or[1].(bson.M)
	if tie["price_value"] != 149.5 {
		t.Errorf("tie branch should match the number exactly, got %v", tie["price_value"])
	}

	sort := opts.Sort.(bson.D)
	if sort[0].Key != "price_value" || sort[0].Value != 1 {
		t.Errorf("unexpected sort %v", sort)
	}
}

func TestIDValue(t *testing.T) {
	oid := primitive.NewObjectID()
	if IDValue(oid.Hex()) != oid {
		t.Error("hex id should become an ObjectID")
	}
	if IDValue("firebase-uid-123") != "firebase-uid-123" {
		t.Error("non-hex id should stay a string")
	}
}

func TestWithTimeout_KeepsEarlierDeadline(t *testing.T) {
	parent, cancel := WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	ctx, cancel2 := WithTimeout(parent, time.Hour)
	defer cancel2()

	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > time.Second {
		t.Errorf("expected the parent's short deadline to win, got %v", deadline)
	}
}
