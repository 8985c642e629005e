package main

import (
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/app"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
)

const ServiceName = "pilavtour-admin"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetAll(ServiceName)
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting admin service", "database", cfg.MongoDatabaseName)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg)
	serverApp.Run()
}
