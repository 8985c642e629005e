package validators

import "go.mongodb.org/mongo-driver/bson"

var ArticleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"title", "description", "created_at", "updated_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":         idSchema,
			"title":       multiLangSchema,
			"description": multiLangSchema,
			"cover_image": bson.M{"bsonType": "string"},
			"likes":       bson.M{"bsonType": "int", "minimum": 0},
			"views":       bson.M{"bsonType": "int", "minimum": 0},
			"author_id":   bson.M{"bsonType": "string"},
			"created_at":  dateSchema,
			"updated_at":  dateSchema,
		},
	},
}
