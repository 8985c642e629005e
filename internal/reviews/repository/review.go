package repository

import (
	"context"
	"fmt"

	reviewerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "reviews"
)

type ReviewRepository interface {
	Find(ctx context.Context, q pagination.Query) ([]*model.Review, error)
	Delete(ctx context.Context, id string) error
}

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	check      mongodb.CheckFunc[model.Review]
}

func NewMongoReviewRepository(cfg *config.Config, check mongodb.CheckFunc[model.Review]) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		check:      check,
	}
}

func (r *mongoReviewRepository) Find(ctx context.Context, q pagination.Query) ([]*model.Review, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, opts := mongodb.BuildCursorQuery(q)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews, err := mongodb.DecodeAll(ctx, cursor, r.check)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reviewerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reviewerrors.ErrNotFound, id)
	}
	return nil
}
