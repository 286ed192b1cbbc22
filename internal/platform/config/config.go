package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration so main stays lean. Values come
// from the environment; a .env file is honored in development.
type Server struct {
	Addr            string
	Environment     string
	Debug           bool
	SessionKey      string
	SessionTokenTTL time.Duration

	// DatabaseURL selects the PostgreSQL store when set; the in-memory store
	// is used otherwise.
	DatabaseURL string

	// AMQPURL enables the notification dispatcher when set.
	AMQPURL           string
	NotificationQueue string
	OutboxPoll        time.Duration
	OutboxBatchSize   int

	SignTxTimeout time.Duration
	SeedDemoData  bool
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	return Server{
		Addr:              envOr("LEASEGATE_ADDR", ":8080"),
		Environment:       envOr("LEASEGATE_ENV", "development"),
		Debug:             envBool("LEASEGATE_DEBUG", false),
		SessionKey:        envOr("SESSION_SIGNING_KEY", "dev-secret-key-change-in-production"),
		SessionTokenTTL:   envDuration("SESSION_TOKEN_TTL", 24*time.Hour),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		NotificationQueue: envOr("NOTIFICATION_QUEUE", "leasegate.notifications"),
		OutboxPoll:        envDuration("OUTBOX_POLL_INTERVAL", 500*time.Millisecond),
		OutboxBatchSize:   envInt("OUTBOX_BATCH_SIZE", 100),
		SignTxTimeout:     envDuration("SIGN_TX_TIMEOUT", 5*time.Second),
		SeedDemoData:      envBool("SEED_DEMO_DATA", false),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
