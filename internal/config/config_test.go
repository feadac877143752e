package config

import (
	"testing"
	"time"
)

// allEnvVars lists every config env var so tests start clean.
var allEnvVars = []string{
	"SLIDECAST_DATABASE_URL", "SLIDECAST_HTTP_ADDR", "SLIDECAST_NATS_URL",
	"SLIDECAST_AUTH_SECRET", "SLIDECAST_SESSION_VERIFY_URL",
	"SLIDECAST_REACTION_TTL", "SLIDECAST_HEARTBEAT_INTERVAL",
	"SLIDECAST_ARCHIVE_INTERVAL", "SLIDECAST_ARCHIVE_S3_BUCKET",
	"SLIDECAST_ARCHIVE_S3_ENDPOINT", "SLIDECAST_ARCHIVE_S3_REGION",
	"SLIDECAST_ARCHIVE_S3_KEY",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty (memory store)", cfg.DatabaseURL)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.ReactionTTL != 5*time.Second {
		t.Errorf("ReactionTTL = %v, want 5s", cfg.ReactionTTL)
	}
	if cfg.HeartbeatInterval != 15*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 15s", cfg.HeartbeatInterval)
	}
	if cfg.ArchiveInterval != 3*time.Minute {
		t.Errorf("ArchiveInterval = %v, want 3m", cfg.ArchiveInterval)
	}
	if cfg.ArchiveS3Region != "us-east-1" {
		t.Errorf("ArchiveS3Region = %q", cfg.ArchiveS3Region)
	}
	if cfg.ArchiveS3Key != "slidecast/decks.jsonl" {
		t.Errorf("ArchiveS3Key = %q", cfg.ArchiveS3Key)
	}
}

func TestLoadCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("SLIDECAST_DATABASE_URL", "postgres://db:5432/slidecast")
	t.Setenv("SLIDECAST_HTTP_ADDR", ":3000")
	t.Setenv("SLIDECAST_NATS_URL", "nats://localhost:4222")
	t.Setenv("SLIDECAST_AUTH_SECRET", "s3cret")
	t.Setenv("SLIDECAST_SESSION_VERIFY_URL", "https://id.example/verify")
	t.Setenv("SLIDECAST_REACTION_TTL", "10s")
	t.Setenv("SLIDECAST_HEARTBEAT_INTERVAL", "30s")
	t.Setenv("SLIDECAST_ARCHIVE_INTERVAL", "10m")
	t.Setenv("SLIDECAST_ARCHIVE_S3_BUCKET", "my-bucket")
	t.Setenv("SLIDECAST_ARCHIVE_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("SLIDECAST_ARCHIVE_S3_REGION", "eu-west-1")
	t.Setenv("SLIDECAST_ARCHIVE_S3_KEY", "custom/key.jsonl")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "postgres://db:5432/slidecast" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
	if cfg.AuthSecret != "s3cret" {
		t.Errorf("AuthSecret = %q", cfg.AuthSecret)
	}
	if cfg.SessionVerifyURL != "https://id.example/verify" {
		t.Errorf("SessionVerifyURL = %q", cfg.SessionVerifyURL)
	}
	if cfg.ReactionTTL != 10*time.Second {
		t.Errorf("ReactionTTL = %v", cfg.ReactionTTL)
	}
	if cfg.HeartbeatInterval != 30*time.Second {
		t.Errorf("HeartbeatInterval = %v", cfg.HeartbeatInterval)
	}
	if cfg.ArchiveInterval != 10*time.Minute {
		t.Errorf("ArchiveInterval = %v", cfg.ArchiveInterval)
	}
	if cfg.ArchiveS3Bucket != "my-bucket" {
		t.Errorf("ArchiveS3Bucket = %q", cfg.ArchiveS3Bucket)
	}
	if cfg.ArchiveS3Endpoint != "http://minio:9000" {
		t.Errorf("ArchiveS3Endpoint = %q", cfg.ArchiveS3Endpoint)
	}
	if cfg.ArchiveS3Region != "eu-west-1" {
		t.Errorf("ArchiveS3Region = %q", cfg.ArchiveS3Region)
	}
	if cfg.ArchiveS3Key != "custom/key.jsonl" {
		t.Errorf("ArchiveS3Key = %q", cfg.ArchiveS3Key)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	for _, key := range []string{
		"SLIDECAST_REACTION_TTL", "SLIDECAST_HEARTBEAT_INTERVAL", "SLIDECAST_ARCHIVE_INTERVAL",
	} {
		t.Run(key, func(t *testing.T) {
			clearAllEnv(t)
			t.Setenv(key, "not-a-duration")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}
		})
	}
}

func TestLoadArchiveDisabled(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("SLIDECAST_ARCHIVE_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ArchiveInterval != 0 {
		t.Errorf("ArchiveInterval = %v, want 0 (disabled)", cfg.ArchiveInterval)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
