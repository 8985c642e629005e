package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	articlehandler "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/handler"
	articlerepo "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/repository"
	articleservice "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/service"
	articlevalidator "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/validator"
	authhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/auth/handler"
	authrepo "github.com/Dotlabs-uz/pilavtour-admin/internal/auth/repository"
	authservice "github.com/Dotlabs-uz/pilavtour-admin/internal/auth/service"
	bookinghandler "github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/handler"
	bookingrepo "github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/repository"
	bookingservice "github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/service"
	bookingvalidator "github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/validator"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	healthhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/health/handler"
	reviewhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/handler"
	reviewrepo "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/repository"
	reviewservice "github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/service"
	tourhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/handler"
	tourrepo "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/repository"
	tourservice "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/service"
	tourvalidator "github.com/Dotlabs-uz/pilavtour-admin/internal/tours/validator"
	translationhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/translation/handler"
	translationservice "github.com/Dotlabs-uz/pilavtour-admin/internal/translation/service"
	uploadhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/uploads/handler"
	uploadservice "github.com/Dotlabs-uz/pilavtour-admin/internal/uploads/service"
	userhandler "github.com/Dotlabs-uz/pilavtour-admin/internal/users/handler"
	userrepo "github.com/Dotlabs-uz/pilavtour-admin/internal/users/repository"
	userservice "github.com/Dotlabs-uz/pilavtour-admin/internal/users/service"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/contracts"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/middleware"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"
)

const IdempotencyHeader = "Idempotency-Key"

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore middleware.IdempotencyStore
	rateLimiter      *middleware.SubjectRateLimiter
	healthHandler    http.Handler
	appHttpHandler   http.Handler
}

func NewApplication() *Application {
	return &Application{}
}

// SetApp wires every repository, service and handler against the clients
// already connected on cfg.
func (a *Application) SetApp(cfg *config.Config) {
	a.cfg = cfg
	admins := authrepo.NewMongoAdminRepository(cfg)

	a.setHealthHandler(healthhandler.NewHealthHandler(
		healthhandler.MongoPing(cfg.Client.Mongo),
		healthhandler.RedisPing(cfg.Client.Redis),
		cfg.Log,
	))
	a.setAppHandler(a.handlers(admins), admins)
	a.setAppServer()
}

func (a *Application) handlers(admins authrepo.AdminRepository) []contracts.Handler {
	cfg := a.cfg
	log := cfg.Log
	validate := validation.New(log)
	notifier := changes.NewNotifier(cfg.Client.Events, log)
	translation := translationservice.NewTranslationService(cfg)

	tourValidator := tourvalidator.NewTourValidator(log)
	tours := tourrepo.NewMongoTourRepository(cfg, tourValidator.ValidateStored)

	articleValidator := articlevalidator.NewArticleValidator(log)
	articles := articlerepo.NewMongoArticleRepository(cfg, articleValidator.Validate)

	bookingValidator := bookingvalidator.NewBookingValidator(log)
	bookings := bookingrepo.NewMongoBookingRepository(cfg, bookingValidator.Validate)

	users := userrepo.NewMongoUserRepository(cfg, validation.Check[model.User](validate))
	reviews := reviewrepo.NewMongoReviewRepository(cfg, validation.Check[model.Review](validate))

	return []contracts.Handler{
		tourhandler.NewTourHandler(
			tourservice.NewTourService(tours, tourValidator, translation, notifier, cfg),
			log, cfg.PageSize,
		),
		articlehandler.NewArticleHandler(
			articleservice.NewArticleService(articles, articleValidator, translation, notifier, cfg),
			log, cfg.PageSize,
		),
		bookinghandler.NewBookingHandler(
			bookingservice.NewBookingService(bookings, users, tours, bookingValidator, notifier, cfg),
			log, cfg.PageSize,
		),
		userhandler.NewUserHandler(userservice.NewUserService(users, notifier, cfg), log, cfg.PageSize),
		reviewhandler.NewReviewHandler(reviewservice.NewReviewService(reviews, users, notifier, cfg), log, cfg.PageSize),
		authhandler.NewAuthHandler(authservice.NewAuthService(admins, cfg), log),
		uploadhandler.NewUploadHandler(uploadservice.NewUploadService(admins, cfg), log),
		translationhandler.NewTranslationHandler(translation, log),
	}
}

func (a *Application) setHealthHandler(health contracts.Handler) {
	healthRouter := httprouter.New()
	health.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(handlers []contracts.Handler, admins middleware.AdminResolver) {
	cfg := a.cfg
	appRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	if cfg.Client.Redis != nil {
		a.idempotencyStore = middleware.NewRedisIdempotencyStore(cfg.Client.Redis, cfg.IdempotencyTTL, cfg.Log)
	} else {
		a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(cfg.IdempotencyTTL)
	}
	a.rateLimiter = middleware.NewSubjectRateLimiter(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		middleware.SessionSubject(cfg.Client.Sessions),
		cfg.Log,
	)

	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.RequireAdmin(cfg.Client.Sessions, admins, cfg.Log, authhandler.SignInPath)(appHttpHandler)
	appHttpHandler = middleware.Idempotency(a.idempotencyStore, IdempotencyHeader)(appHttpHandler)
	appHttpHandler = middleware.RequestTimeout(cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.RateLimit(a.rateLimiter)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(cfg.MaxRequestSize), int64(cfg.MaxUploadSize))(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	cfg.Log.Info("Application endpoints configured with full security middleware stack")
}

func (a *Application) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)
	return mux
}

func (a *Application) setAppServer() {
	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.routes(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.cfg.Log.Info("Stopping background workers...")
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
	a.cfg.Log.Info("Background workers stopped")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
