package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	articles "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/repository"
	admins "github.com/Dotlabs-uz/pilavtour-admin/internal/auth/repository"
	bookings "github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/migrations/mongo/validators"
	reviews "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/repository"
	tours "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/repository"
	users "github.com/Dotlabs-uz/pilavtour-admin/internal/users/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

// listOrder backs the default created_at desc listing and its _id tiebreak.
var listOrder = mongo.IndexModel{Keys: bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}}

var (
	ToursIndexes = []mongo.IndexModel{
		listOrder,
		{Keys: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "style", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "price_value", Value: -1}, {Key: "_id", Value: -1}}},
	}

	ArticlesIndexes = []mongo.IndexModel{
		listOrder,
		{Keys: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		listOrder,
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tour_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "booking_date", Value: -1}, {Key: "_id", Value: -1}}},
	}

	ReviewsIndexes = []mongo.IndexModel{
		listOrder,
		{Keys: bson.D{{Key: "rate", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "tour_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "article_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	UsersIndexes = []mongo.IndexModel{
		listOrder,
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	AdminsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func Collections() map[string]CollectionDef {
	return map[string]CollectionDef{
		tours.CollectionName:    {Indexes: ToursIndexes, Validator: validators.TourValidator},
		articles.CollectionName: {Indexes: ArticlesIndexes, Validator: validators.ArticleValidator},
		bookings.CollectionName: {Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		reviews.CollectionName:  {Indexes: ReviewsIndexes, Validator: validators.ReviewValidator},
		users.CollectionName:    {Indexes: UsersIndexes, Validator: validators.UserValidator},
		admins.CollectionName:   {Indexes: AdminsIndexes, Validator: validators.AdminValidator},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for name, def := range Collections() {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	if err := backfillPriceValues(ctx, db.Collection(tours.CollectionName), log); err != nil {
		return fmt.Errorf("failed to backfill tour prices: %w", err)
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		// Moderate validation leaves documents that predate the schema writable.
		opts := options.CreateCollection().
			SetValidator(validator).
			SetValidationLevel("moderate")
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

// PriceBackfill sets the numeric price copy on tours written before it
// existed. A price the server cannot convert counts as zero.
var PriceBackfill = mongo.Pipeline{
	{{Key: "$set", Value: bson.M{
		"price_value": bson.M{"$convert": bson.M{
			"input":   "$price",
			"to":      "double",
			"onError": 0,
			"onNull":  0,
		}},
	}}},
}

func backfillPriceValues(ctx context.Context, coll *mongo.Collection, log *logger.Logger) error {
	filter := bson.M{"price_value": bson.M{"$exists": false}}
	result, err := coll.UpdateMany(ctx, filter, PriceBackfill)
	if err != nil {
		return err
	}
	if result.ModifiedCount > 0 {
		log.Info("Backfilled tour price values", "count", result.ModifiedCount)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
