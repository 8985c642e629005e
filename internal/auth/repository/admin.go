package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "admins"
)

// AdminRepository is the admin allow-list, keyed by identity provider uid.
type AdminRepository interface {
	ResolveAdmin(ctx context.Context, uid string) (*model.Admin, error)
	Grant(ctx context.Context, uid, email string) (*model.Admin, error)
}

type mongoAdminRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdminRepository(cfg *config.Config) AdminRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAdminRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// ResolveAdmin returns nil and no error when uid is not allow-listed.
func (r *mongoAdminRepository) ResolveAdmin(ctx context.Context, uid string) (*model.Admin, error) {
	if uid == "" {
		return nil, nil
	}

	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var admin model.Admin
	if err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve admin %s: %w", uid, err)
	}
	return &admin, nil
}

// Grant adds uid to the allow-list, or refreshes its email if present.
func (r *mongoAdminRepository) Grant(ctx context.Context, uid, email string) (*model.Admin, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := mongodb.Now()
	update := bson.M{
		"$set":         bson.M{"email": email, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var admin model.Admin
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": uid}, update, opts).Decode(&admin); err != nil {
		return nil, fmt.Errorf("failed to grant admin %s: %w", uid, err)
	}
	return &admin, nil
}
