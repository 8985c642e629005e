package validators

import "go.mongodb.org/mongo-driver/bson"

var TourValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"price",
			"style",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":         idSchema,
			"title":       multiLangSchema,
			"description": multiLangSchema,
			"location":    multiLangSchema,

			"price": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"price_value": bson.M{
				"bsonType": bson.A{"double", "int", "long"},
			},

			"style": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Premium",
					"Econom",
					"Standart",
					"Lux",
				},
			},

			"rating": bson.M{
				"bsonType": bson.A{"double", "int"},
				"minimum":  0,
				"maximum":  5,
			},

			"duration": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"days":   bson.M{"bsonType": "int", "minimum": 0},
					"nights": bson.M{"bsonType": "int", "minimum": 0},
				},
			},

			"itinerary": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"title":               multiLangSchema,
						"description":         multiLangSchema,
						"accommodation":       multiLangArray(),
						"meals":               multiLangArray(),
						"included_activities": multiLangArray(),
						"optional_activities": multiLangArray(),
						"special_information": multiLangSchema,
					},
				},
			},

			"dates": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"start_date", "end_date", "status", "price"},
					"properties": bson.M{
						"start_date": dateSchema,
						"end_date":   dateSchema,
						"status": bson.M{
							"bsonType": "string",
							"enum":     []string{"Available", "Few spots", "Sold out"},
						},
						"price": bson.M{"bsonType": "string"},
					},
				},
			},

			"inclusions": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"included":     multiLangArray(),
					"not_included": multiLangArray(),
				},
			},

			"images": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"created_at": dateSchema,
			"updated_at": dateSchema,
		},
	},
}
