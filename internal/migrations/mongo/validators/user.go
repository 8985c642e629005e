package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "role", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":   idSchema,
			"email": bson.M{"bsonType": "string", "minLength": 3},
			"name":  bson.M{"bsonType": "string"},
			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"admin", "user"},
			},
			"avatar":     bson.M{"bsonType": "string"},
			"created_at": dateSchema,
		},
	},
}

// AdminValidator covers the allow-list. Its _id is the identity provider uid.
var AdminValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "email", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string", "minLength": 1},
			"email":      bson.M{"bsonType": "string"},
			"created_at": dateSchema,
			"updated_at": dateSchema,
		},
	},
}
