package mongo

import (
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildCursorQuery translates a pagination query into a Mongo filter and
// find options. Records are ordered by (sort field, _id) so that equal sort
// values still have a strict order. An end-anchored (Before) query is run
// in the inverted order, which returns the records nearest the anchor first.
func BuildCursorQuery(q pagination.Query) (bson.M, *options.FindOptions) {
	field := q.SortField
	if field == "" {
		field = pagination.DefaultSortField
	}

	order := 1
	if q.Direction != pagination.Asc {
		order = -1
	}
	anchor := q.After
	if q.Before != nil {
		anchor = q.Before
		order = -order
	}

	filter := bson.M{}
	for k, v := range q.Equality {
		filter[k] = v
	}

	if anchor != nil {
		op := "$gt"
		if order < 0 {
			op = "$lt"
		}
		value := anchor.SortValue()
		filter["$or"] = bson.A{
			bson.M{field: bson.M{op: value}},
			bson.M{field: value, "_id": bson.M{op: IDValue(anchor.ID)}},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: field, Value: order},
		{Key: "_id", Value: order},
	})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return filter, opts
}

// IDValue returns the ObjectID for a hex id and the raw string otherwise.
// Users are keyed by the identity provider's uid, everything else by ObjectID.
func IDValue(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
