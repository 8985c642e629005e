package repository

import (
	"context"
	"errors"
	"fmt"

	articleerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "articles"
)

type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) error
	FindByID(ctx context.Context, id string) (*model.Article, error)
	Find(ctx context.Context, q pagination.Query) ([]*model.Article, error)
	Replace(ctx context.Context, id string, a *model.Article) error
	Delete(ctx context.Context, id string) error
}

type mongoArticleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	check      mongodb.CheckFunc[model.Article]
}

func NewMongoArticleRepository(cfg *config.Config, check mongodb.CheckFunc[model.Article]) ArticleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoArticleRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		check:      check,
	}
}

func (r *mongoArticleRepository) objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", articleerrors.ErrInvalidID, id)
	}
	return oid, nil
}

func (r *mongoArticleRepository) Create(ctx context.Context, a *model.Article) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc := *a
	doc.ID = ""
	result, err := r.collection.InsertOne(ctx, &doc)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *mongoArticleRepository) FindByID(ctx context.Context, id string) (*model.Article, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := r.objectID(id)
	if err != nil {
		return nil, err
	}

	a, err := mongodb.DecodeOne(r.collection.FindOne(ctx, bson.M{"_id": oid}), r.check)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", articleerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return a, nil
}

func (r *mongoArticleRepository) Find(ctx context.Context, q pagination.Query) ([]*model.Article, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, opts := mongodb.BuildCursorQuery(q)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	articles, err := mongodb.DecodeAll(ctx, cursor, r.check)
	if err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}

func (r *mongoArticleRepository) Replace(ctx context.Context, id string, a *model.Article) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := r.objectID(id)
	if err != nil {
		return err
	}

	doc := *a
	doc.ID = ""
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, &doc)
	if err != nil {
		return fmt.Errorf("failed to replace article: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", articleerrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := r.objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", articleerrors.ErrNotFound, id)
	}
	return nil
}
