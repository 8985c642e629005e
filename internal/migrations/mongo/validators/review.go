package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"user_id", "rate", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":     idSchema,
			"user_id": bson.M{"bsonType": "string"},
			"rate": bson.M{
				"bsonType": bson.A{"double", "int"},
				"minimum":  0,
				"maximum":  5,
			},
			"comment":    bson.M{"bsonType": "string"},
			"tour_id":    bson.M{"bsonType": "string"},
			"article_id": bson.M{"bsonType": "string"},
			"created_at": dateSchema,
			"updated_at": dateSchema,
		},
	},
}
