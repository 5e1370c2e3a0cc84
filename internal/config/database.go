package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"library-catalog/internal/infrastructure/database"
)

// strictEnv parses variables that must be well formed. Every malformed value
// is recorded so one startup failure reports all of them.
type strictEnv struct {
	errs []error
}

func (s *strictEnv) int(key string, def int) int {
	raw := getEnv(key, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return v
}

func (s *strictEnv) int32(key string, def int32) int32 {
	raw := getEnv(key, strconv.Itoa(int(def)))
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return int32(v)
}

func (s *strictEnv) duration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, def.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return v
}

func (s *strictEnv) err() error {
	return errors.Join(s.errs...)
}

// LoadDatabaseConfig reads the DB_* variables. Unlike the other sections,
// malformed numbers and durations fail startup instead of falling back.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	env := &strictEnv{}
	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              env.int("DB_PORT", 5432),
		Username:          getEnv("DB_USER", "catalog"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "library_catalog"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          env.int32("DB_MAX_CONNECTIONS", 25),
		MinConns:          env.int32("DB_MIN_CONNECTIONS", 2),
		MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        env.int("DB_MAX_RETRIES", 5),
		RetryDelay:        env.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if err := env.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}
