package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/client"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/identity"
	kafka_config "github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka/config"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/storage"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int
	MaxUploadSize  int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	PageSize     int
	PageTokenKey string

	TranslateAPIKey       string
	TranslateDetectSource bool
	TranslateConcurrency  int
	TranslateCacheTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Firebase identity.Config

	SessionSecret    string
	SessionTTL       time.Duration
	AuthStateTimeout time.Duration

	Storage storage.Config

	SeedBookingCount int

	Kafka *kafka_config.Config

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		MaxUploadSize:  getEnvNum(EnvMaxUploadSize, DefaultMaxUploadSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		PageSize:     getEnvNum(EnvPageSize, DefaultPageSize),
		PageTokenKey: getEnvStr(EnvPageTokenKey, ""),

		TranslateAPIKey:       getEnvStr(EnvTranslateAPIKey, ""),
		TranslateDetectSource: getEnvBool(EnvTranslateDetectSource, DefaultTranslateDetectSource),
		TranslateConcurrency:  getEnvNum(EnvTranslateConcurrency, DefaultTranslateConcurrency),
		TranslateCacheTTL:     getEnvDuration(EnvTranslateCacheTTL, DefaultTranslateCacheTTL),

		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, 0),

		Firebase: identity.Config{
			ProjectID:       getEnvStr(EnvFirebaseProjectID, ""),
			CredentialsFile: getEnvStr(EnvFirebaseCredentialsFile, ""),
			CredentialsJSON: getEnvStr(EnvFirebaseCredentialsJSON, ""),
			APIKey:          getEnvStr(EnvFirebaseAPIKey, ""),
		},

		SessionSecret:    getEnvStr(EnvSessionSecret, ""),
		SessionTTL:       getEnvDuration(EnvSessionTTL, DefaultSessionTTL),
		AuthStateTimeout: getEnvDuration(EnvAuthStateTimeout, DefaultAuthStateTimeout),

		Storage: storage.Config{
			Endpoint:      getEnvStr(EnvS3Endpoint, ""),
			Region:        getEnvStr(EnvS3Region, DefaultS3Region),
			Bucket:        getEnvStr(EnvS3Bucket, ""),
			AccessKey:     getEnvStr(EnvS3AccessKey, ""),
			SecretKey:     getEnvStr(EnvS3SecretKey, ""),
			PublicBaseURL: getEnvStr(EnvS3PublicBaseURL, ""),
			UsePathStyle:  getEnvBool(EnvS3UsePathStyle, false),
		},

		SeedBookingCount: getEnvNum(EnvSeedBookingCount, DefaultSeedBookingCount),

		Kafka: kafka_config.Load(),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// LoadJob loads only what a one-off database job needs: Mongo and logging.
func LoadJob(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		Log: logger.New(logger.Config{
			Level:   getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:  getEnvStr(EnvLogFormat, DefaultLogFormat),
			Service: serviceName,
		}),
		Client: client.NewClient(),
	}

	if cfg.MongoDatabaseName == "" || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		cfg.Log.Fatal("Invalid Mongo configuration", "mongo_uri", redactMongoURI(cfg.MongoURI), "mongo_database", cfg.MongoDatabaseName)
	}
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func (cfg *Config) SetTranslator() {
	cfg.Client.SetTranslator(cfg.Log, cfg.TranslateAPIKey)
}

func (cfg *Config) SetStorage() {
	cfg.Client.SetStorage(cfg.Log, cfg.Storage)
}

func (cfg *Config) SetIdentity() {
	cfg.Client.SetIdentity(cfg.Log, cfg.Firebase)
}

func (cfg *Config) SetEvents(source string) {
	cfg.Client.SetEvents(cfg.Log, cfg.Kafka, source)
}

func (cfg *Config) SetSealer() {
	cfg.Client.SetSealer(cfg.Log, cfg.PageTokenKey)
}

func (cfg *Config) SetSessions() {
	cfg.Client.SetSessions(cfg.Log, cfg.SessionSecret, cfg.SessionTTL, SessionIssuer)
}

// SetAll connects every client the admin service uses.
func (cfg *Config) SetAll(source string) {
	cfg.SetMongo()
	cfg.SetRedis()
	cfg.SetTranslator()
	cfg.SetStorage()
	cfg.SetIdentity()
	cfg.SetEvents(source)
	cfg.SetSealer()
	cfg.SetSessions()
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"SessionTTL", cfg.SessionTTL},
		{"AuthStateTimeout", cfg.AuthStateTimeout},
		{"TranslateCacheTTL", cfg.TranslateCacheTTL},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", p.name, p.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.MaxUploadSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxUploadSize must be positive, got: %d", cfg.MaxUploadSize))
	}
	if cfg.PageSize < 1 || cfg.PageSize > pagination.MaxPageSize {
		errors = append(errors, fmt.Sprintf("PageSize must be between 1 and %d, got: %d", pagination.MaxPageSize, cfg.PageSize))
	}
	if cfg.TranslateConcurrency <= 0 {
		errors = append(errors, fmt.Sprintf("TranslateConcurrency must be positive, got: %d", cfg.TranslateConcurrency))
	}
	if cfg.SeedBookingCount <= 0 {
		errors = append(errors, fmt.Sprintf("SeedBookingCount must be positive, got: %d", cfg.SeedBookingCount))
	}
	if cfg.SessionSecret == "" {
		errors = append(errors, "SessionSecret cannot be empty")
	} else if len(cfg.SessionSecret) < 32 {
		errors = append(errors, "SessionSecret must be at least 32 characters")
	}
	if cfg.Kafka != nil {
		errors = append(errors, cfg.Kafka.Validate()...)
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	args := []any{
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"max_upload_size", cfg.MaxUploadSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"page_size", cfg.PageSize,
		"page_token_key_set", cfg.PageTokenKey != "",
		"translate_key_set", cfg.TranslateAPIKey != "",
		"translate_detect_source", cfg.TranslateDetectSource,
		"translate_concurrency", cfg.TranslateConcurrency,
		"redis_addr", cfg.RedisAddr,
		"firebase_project", cfg.Firebase.ProjectID,
		"firebase_key_set", cfg.Firebase.APIKey != "",
		"session_ttl", cfg.SessionTTL,
		"auth_state_timeout", cfg.AuthStateTimeout,
		"s3_bucket", cfg.Storage.Bucket,
		"s3_endpoint", cfg.Storage.Endpoint,
		"seed_booking_count", cfg.SeedBookingCount,
	}
	if cfg.Kafka != nil {
		args = append(args, cfg.Kafka.LogFields()...)
	}
	cfg.Log.Info("Configuration loaded successfully", args...)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
