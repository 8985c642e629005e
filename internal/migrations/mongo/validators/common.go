package validators

import "go.mongodb.org/mongo-driver/bson"

// Documents inserted by the service get an ObjectID; imported ones may carry
// string ids.
var idSchema = bson.M{"bsonType": bson.A{"objectId", "string"}}

var dateSchema = bson.M{"bsonType": "date"}

var multiLangSchema = bson.M{
	"bsonType": "object",
	"properties": bson.M{
		"uz": bson.M{"bsonType": "string"},
		"ru": bson.M{"bsonType": "string"},
		"en": bson.M{"bsonType": "string"},
		"sp": bson.M{"bsonType": "string"},
		"uk": bson.M{"bsonType": "string"},
		"it": bson.M{"bsonType": "string"},
		"ge": bson.M{"bsonType": "string"},
	},
}

func multiLangArray() bson.M {
	return bson.M{"bsonType": "array", "items": multiLangSchema}
}
