package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "pilavtour"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 60 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024  // 1MB
	DefaultMaxUploadSize  = 10 * 1024 * 1024 // 10MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 90 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPageSize = 10

	DefaultTranslateDetectSource = true
	DefaultTranslateConcurrency  = 8
	DefaultTranslateCacheTTL     = 30 * 24 * time.Hour

	DefaultSessionTTL       = 12 * time.Hour
	DefaultAuthStateTimeout = 5 * time.Second

	DefaultS3Region = "us-east-1"

	DefaultSeedBookingCount = 15

	SessionIssuer = "pilavtour-admin"
)
