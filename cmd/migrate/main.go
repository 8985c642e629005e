package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/auth/repository"
	mongoMigration "github.com/Dotlabs-uz/pilavtour-admin/internal/migrations/mongo"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sanitizer"
)

const JobName = "mongo-migration"

func main() {
	grantUID := flag.String("grant-admin", "", "identity provider uid to add to the admin allow-list")
	grantEmail := flag.String("grant-email", "", "email recorded with -grant-admin")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.LoadJob(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	if uid := strings.TrimSpace(*grantUID); uid != "" {
		admin, err := repository.NewMongoAdminRepository(cfg).Grant(ctx, uid, sanitizer.SanitizeEmail(*grantEmail))
		if err != nil {
			cfg.Log.Fatal("Failed to grant admin", "uid", uid, "error", err)
		}
		cfg.Log.Info("Admin granted", "uid", admin.ID, "email", admin.Email)
	}

	cfg.Log.Info("Migration completed successfully")
}
