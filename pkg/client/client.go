package client

import (
	"context"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/identity"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	kafka_config "github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka/config"
	kafka_middleware "github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka/middleware"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sealer"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/session"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/storage"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/translate"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const externalInitTimeout = 10 * time.Second

// Client holds the process-wide connections. Optional integrations stay
// nil when unconfigured and the features using them answer 503.
type Client struct {
	Mongo      *mongo.Client
	Redis      *redis.Client
	Translator translate.Translator
	Storage    storage.Storage
	Identity   identity.Provider
	Events     kafka.Publisher
	Sealer     *sealer.Sealer
	Sessions   *session.Manager
}

func NewClient() *Client {
	return &Client{Events: kafka.NopPublisher{}}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = client
}

func (c *Client) SetRedis(log *logger.Logger, addr, password string, db int) {
	if addr == "" {
		log.Info("Redis not configured, translation cache disabled")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), externalInitTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, translation cache disabled", "addr", addr, "error", err)
		_ = rdb.Close()
		return
	}

	log.Info("Successfully connected to Redis", "addr", addr)
	c.Redis = rdb
}

func (c *Client) SetTranslator(log *logger.Logger, apiKey string) {
	if apiKey == "" {
		log.Warn("Translation API key not set, translation is unavailable")
		return
	}

	tr, err := translate.NewGoogleTranslator(context.Background(), apiKey)
	if err != nil {
		log.Fatal("Failed to create translation client", "error", err)
	}
	c.Translator = tr
}

func (c *Client) SetStorage(log *logger.Logger, cfg storage.Config) {
	if cfg.Bucket == "" {
		log.Warn("S3 bucket not set, uploads are unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), externalInitTimeout)
	defer cancel()

	s, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create object storage client", "error", err)
	}
	c.Storage = s
}

func (c *Client) SetIdentity(log *logger.Logger, cfg identity.Config) {
	if cfg.ProjectID == "" || cfg.APIKey == "" {
		log.Warn("Firebase not configured, sign-in is unavailable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), externalInitTimeout)
	defer cancel()

	provider, err := identity.NewFirebase(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize Firebase", "error", err)
	}
	c.Identity = provider
}

func (c *Client) SetEvents(log *logger.Logger, cfg *kafka_config.Config, source string) {
	if cfg == nil || !cfg.Enabled() {
		log.Info("Kafka brokers not set, change events are dropped")
		c.Events = kafka.NopPublisher{}
		return
	}

	producer, err := kafka.NewProducer(cfg, log, source)
	if err != nil {
		log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.EnableLogging {
		producer.Use(kafka_middleware.Logging(log))
	}
	c.Events = producer
}

func (c *Client) SetSealer(log *logger.Logger, key string) {
	if key == "" {
		generated, err := sealer.GenerateKey()
		if err != nil {
			log.Fatal("Failed to generate page token key", "error", err)
		}
		log.Warn("Page token key not set, list tokens will not survive a restart")
		key = generated
	}

	s, err := sealer.New(key)
	if err != nil {
		log.Fatal("Invalid page token key", "error", err)
	}
	c.Sealer = s
}

func (c *Client) SetSessions(log *logger.Logger, secret string, ttl time.Duration, issuer string) {
	m, err := session.NewManager(secret, ttl, issuer)
	if err != nil {
		log.Fatal("Failed to create session manager", "error", err)
	}
	c.Sessions = m
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), externalInitTimeout)
	defer cancel()

	if c.Events != nil {
		if err := c.Events.Close(); err != nil {
			log.Error("Failed to close Kafka producer", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error("Failed to close Redis client", "error", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}
}
