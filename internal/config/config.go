package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // SLIDECAST_DATABASE_URL (optional, empty = in-memory store)
	HTTPAddr    string // SLIDECAST_HTTP_ADDR (default ":8080")
	NATSURL     string // SLIDECAST_NATS_URL (optional, empty = in-process bus)
	AuthSecret  string // SLIDECAST_AUTH_SECRET (optional, empty = secret auth disabled)

	// Session identity delegation
	SessionVerifyURL string // SLIDECAST_SESSION_VERIFY_URL (optional, empty = session auth disabled)

	// Stream and reaction tuning
	ReactionTTL       time.Duration // SLIDECAST_REACTION_TTL (default 5s)
	HeartbeatInterval time.Duration // SLIDECAST_HEARTBEAT_INTERVAL (default 15s)

	// Archive settings
	ArchiveInterval   time.Duration // SLIDECAST_ARCHIVE_INTERVAL (default 3m; 0 = disabled)
	ArchiveS3Bucket   string        // SLIDECAST_ARCHIVE_S3_BUCKET (enables S3 when set)
	ArchiveS3Endpoint string        // SLIDECAST_ARCHIVE_S3_ENDPOINT (custom endpoint for MinIO)
	ArchiveS3Region   string        // SLIDECAST_ARCHIVE_S3_REGION (default "us-east-1")
	ArchiveS3Key      string        // SLIDECAST_ARCHIVE_S3_KEY (default "slidecast/decks.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:       os.Getenv("SLIDECAST_DATABASE_URL"),
		HTTPAddr:          envOrDefault("SLIDECAST_HTTP_ADDR", ":8080"),
		NATSURL:           os.Getenv("SLIDECAST_NATS_URL"),
		AuthSecret:        os.Getenv("SLIDECAST_AUTH_SECRET"),
		SessionVerifyURL:  os.Getenv("SLIDECAST_SESSION_VERIFY_URL"),
		ArchiveS3Bucket:   os.Getenv("SLIDECAST_ARCHIVE_S3_BUCKET"),
		ArchiveS3Endpoint: os.Getenv("SLIDECAST_ARCHIVE_S3_ENDPOINT"),
		ArchiveS3Region:   envOrDefault("SLIDECAST_ARCHIVE_S3_REGION", "us-east-1"),
		ArchiveS3Key:      envOrDefault("SLIDECAST_ARCHIVE_S3_KEY", "slidecast/decks.jsonl"),
	}

	var err error
	if c.ReactionTTL, err = durationEnv("SLIDECAST_REACTION_TTL", 5*time.Second); err != nil {
		return nil, err
	}
	if c.HeartbeatInterval, err = durationEnv("SLIDECAST_HEARTBEAT_INTERVAL", 15*time.Second); err != nil {
		return nil, err
	}
	if c.ArchiveInterval, err = durationEnv("SLIDECAST_ARCHIVE_INTERVAL", 3*time.Minute); err != nil {
		return nil, err
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
