package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/imagegen"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	ImageGen imagegen.Config
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name            string
	Environment     string // development, staging, production
	Port            string
	Version         string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// DetailTTL bounds how long a cached book detail may be served.
	DetailTTL time.Duration
}

type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

type CatalogConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Could not read .env file")
	}

	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Library Catalog API"),
			Environment:     getEnv("APP_ENV", "development"),
			Port:            getEnv("APP_PORT", "8080"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ReadTimeout:     getEnvDuration("APP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("APP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: dbCfg,
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			DetailTTL: getEnvDuration("REDIS_DETAIL_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTTL: getEnvDuration("JWT_ACCESS_TTL", 24*time.Hour),
		},
		ImageGen: imagegen.Config{
			BaseURL:           getEnv("IMAGEGEN_BASE_URL", "http://localhost:5001"),
			Path:              getEnv("IMAGEGEN_PATH", imagegen.DefaultPath),
			Timeout:           getEnvDuration("IMAGEGEN_TIMEOUT", 10*time.Second),
			RequestsPerSecond: getEnvFloat("IMAGEGEN_RPS", 2),
			Burst:             getEnvInt("IMAGEGEN_BURST", 2),
			Fallback:          imagegen.Strategy(getEnv("IMAGEGEN_FALLBACK", string(imagegen.StrategyPlaceholder))),
			PlaceholderURL:    getEnv("IMAGEGEN_PLACEHOLDER_URL", imagegen.DefaultPlaceholderURL),
		},
		Catalog: CatalogConfig{
			DefaultPageSize: getEnvInt("CATALOG_DEFAULT_PAGE_SIZE", 6),
			MaxPageSize:     getEnvInt("CATALOG_MAX_PAGE_SIZE", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD must be set in production")
		}
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Catalog.DefaultPageSize < 1 || c.Catalog.MaxPageSize < c.Catalog.DefaultPageSize {
		return fmt.Errorf("invalid page sizes: default=%d max=%d", c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize)
	}
	switch c.ImageGen.Fallback {
	case imagegen.StrategyPlaceholder, imagegen.StrategyStock:
	default:
		return fmt.Errorf("unknown IMAGEGEN_FALLBACK %q", c.ImageGen.Fallback)
	}
	if c.ImageGen.Timeout <= 0 {
		return errors.New("IMAGEGEN_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
