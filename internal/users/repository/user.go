package repository

import (
	"context"
	"errors"
	"fmt"

	usererrors "github.com/Dotlabs-uz/pilavtour-admin/internal/users/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "users"
)

// UserRepository reads the site's users. Users are keyed by the identity
// provider's uid, so ids are plain strings.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Find(ctx context.Context, q pagination.Query) ([]*model.User, error)
	Delete(ctx context.Context, id string) error
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	check      mongodb.CheckFunc[model.User]
}

func NewMongoUserRepository(cfg *config.Config, check mongodb.CheckFunc[model.User]) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		check:      check,
	}
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	user, err := mongodb.DecodeOne(r.collection.FindOne(ctx, bson.M{"_id": mongodb.IDValue(id)}), r.check)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", usererrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Find(ctx context.Context, q pagination.Query) ([]*model.User, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, opts := mongodb.BuildCursorQuery(q)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users, err := mongodb.DecodeAll(ctx, cursor, r.check)
	if err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": mongodb.IDValue(id)})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", usererrors.ErrNotFound, id)
	}
	return nil
}
