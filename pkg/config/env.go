package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvMaxUploadSize  = "MAX_UPLOAD_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvPageSize     = "PAGE_SIZE"
	EnvPageTokenKey = "PAGE_TOKEN_KEY"

	EnvTranslateAPIKey       = "TRANSLATE_API_KEY"
	EnvTranslateDetectSource = "TRANSLATE_DETECT_SOURCE"
	EnvTranslateConcurrency  = "TRANSLATE_CONCURRENCY"
	EnvTranslateCacheTTL     = "TRANSLATE_CACHE_TTL"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvFirebaseProjectID       = "FIREBASE_PROJECT_ID"
	EnvFirebaseCredentialsFile = "FIREBASE_CREDENTIALS_FILE"
	EnvFirebaseCredentialsJSON = "FIREBASE_CREDENTIALS_JSON"
	EnvFirebaseAPIKey          = "FIREBASE_API_KEY"

	EnvSessionSecret    = "SESSION_SECRET"
	EnvSessionTTL       = "SESSION_TTL"
	EnvAuthStateTimeout = "AUTH_STATE_TIMEOUT"

	EnvS3Endpoint      = "S3_ENDPOINT"
	EnvS3Region        = "S3_REGION"
	EnvS3Bucket        = "S3_BUCKET"
	EnvS3AccessKey     = "S3_ACCESS_KEY"
	EnvS3SecretKey     = "S3_SECRET_KEY"
	EnvS3PublicBaseURL = "S3_PUBLIC_BASE_URL"
	EnvS3UsePathStyle  = "S3_USE_PATH_STYLE"

	EnvSeedBookingCount = "SEED_BOOKING_COUNT"
)
