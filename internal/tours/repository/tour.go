package repository

import (
	"context"
	"errors"
	"fmt"

	tourerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "tours"
)

// sortColumns maps list sort fields to the stored field that orders them.
// The price string is ordered through its numeric copy.
var sortColumns = map[string]string{
	"price": "price_value",
}

type TourRepository interface {
	Create(ctx context.Context, t *model.Tour) error
	FindByID(ctx context.Context, id string) (*model.Tour, error)
	Find(ctx context.Context, q pagination.Query) ([]*model.Tour, error)
	Replace(ctx context.Context, id string, t *model.Tour) error
	Delete(ctx context.Context, id string) error
}

type mongoTourRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	check      mongodb.CheckFunc[model.Tour]
}

// NewMongoTourRepository returns a repository that runs check on every
// document it reads.
func NewMongoTourRepository(cfg *config.Config, check mongodb.CheckFunc[model.Tour]) TourRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTourRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		check:      check,
	}
}

func (r *mongoTourRepository) Create(ctx context.Context, t *model.Tour) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc := *t
	doc.ID = ""
	result, err := r.collection.InsertOne(ctx, &doc)
	if err != nil {
		return fmt.Errorf("failed to create tour: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTourRepository) FindByID(ctx context.Context, id string) (*model.Tour, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", tourerrors.ErrInvalidID, id)
	}

	t, err := mongodb.DecodeOne(r.collection.FindOne(ctx, bson.M{"_id": objectID}), r.check)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", tourerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find tour: %w", err)
	}
	return t, nil
}

func (r *mongoTourRepository) Find(ctx context.Context, q pagination.Query) ([]*model.Tour, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if column, ok := sortColumns[q.SortField]; ok {
		q.SortField = column
	}
	filter, opts := mongodb.BuildCursorQuery(q)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tours: %w", err)
	}

	tours, err := mongodb.DecodeAll(ctx, cursor, r.check)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tours: %w", err)
	}
	return tours, nil
}

func (r *mongoTourRepository) Replace(ctx context.Context, id string, t *model.Tour) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tourerrors.ErrInvalidID, id)
	}

	doc := *t
	doc.ID = ""
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, &doc)
	if err != nil {
		return fmt.Errorf("failed to replace tour: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", tourerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoTourRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", tourerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", tourerrors.ErrNotFound, id)
	}
	return nil
}
