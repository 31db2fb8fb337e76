package config

import (
	"os"
	"time"
)

// Config captures server-level configuration.
type Config struct {
	Addr              string
	DatabaseURL       string
	RedisURL          string
	KafkaBrokers      string
	KafkaAuditTopic   string
	SessionSigningKey string
	SessionTTL        time.Duration
	SuperAdminPath    string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("EVENTLIVE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	sessionKey := os.Getenv("SESSION_SIGNING_KEY")
	if sessionKey == "" {
		// Development default - must be overridden in production.
		sessionKey = "dev-secret-key-change-in-production"
	}

	sessionTTL := 12 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			sessionTTL = d
		}
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "eventlive.audit"
	}

	superAdminPath := os.Getenv("SUPER_ADMIN_PATH")
	if superAdminPath == "" {
		superAdminPath = "/super-admin"
	}

	return Config{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		KafkaAuditTopic:   topic,
		SessionSigningKey: sessionKey,
		SessionTTL:        sessionTTL,
		SuperAdminPath:    superAdminPath,
	}
}
