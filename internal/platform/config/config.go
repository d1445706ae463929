// Package config builds runtime configuration from the environment so main
// stays lean. All variables carry the DCERT_ prefix.
package config

import (
	"os"
	"time"
)

// Server captures the walletd process configuration.
type Server struct {
	Addr           string
	JWTSigningKey  string
	RequestTimeout time.Duration

	Database Database
	Redis    Redis
	Kafka    Kafka
}

// Database holds the postgres ledger store configuration. An empty URL
// selects the in-memory store.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Redis holds the credential index configuration. An empty URL selects the
// in-memory index.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka holds the audit publisher configuration. Empty brokers disable the
// Kafka sink.
type Kafka struct {
	Brokers    string
	AuditTopic string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("DCERT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("DCERT_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	auditTopic := os.Getenv("DCERT_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "dcert.audit"
	}

	return Server{
		Addr:           addr,
		JWTSigningKey:  jwtSigningKey,
		RequestTimeout: durationFromEnv("DCERT_REQUEST_TIMEOUT", 30*time.Second),
		Database: Database{
			URL:             os.Getenv("DCERT_DATABASE_URL"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: Redis{
			URL:          os.Getenv("DCERT_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers:    os.Getenv("DCERT_KAFKA_BROKERS"),
			AuditTopic: auditTopic,
		},
	}
}

func durationFromEnv(name string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(name); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return fallback
}
