package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"tour_id",
			"status",
			"number_of_people",
			"booking_date",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": idSchema,

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"tour_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
					"completed",
				},
			},

			"number_of_people": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"total_price": bson.M{
				"bsonType": "string",
			},

			"booking_date": dateSchema,
			"travel_date":  dateSchema,

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"created_at": dateSchema,
			"updated_at": dateSchema,
		},
	},
}
