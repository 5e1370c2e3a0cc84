package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/imagegen"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 6, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 100, cfg.Catalog.MaxPageSize)
	assert.Equal(t, imagegen.StrategyPlaceholder, cfg.ImageGen.Fallback)
	assert.Equal(t, imagegen.DefaultPath, cfg.ImageGen.Path)
	assert.Equal(t, 10*time.Second, cfg.ImageGen.Timeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10*time.Minute, cfg.Redis.DetailTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("IMAGEGEN_FALLBACK", "stock")
	t.Setenv("IMAGEGEN_TIMEOUT", "3s")
	t.Setenv("IMAGEGEN_RPS", "0.5")
	t.Setenv("CATALOG_DEFAULT_PAGE_SIZE", "10")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, imagegen.StrategyStock, cfg.ImageGen.Fallback)
	assert.Equal(t, 3*time.Second, cfg.ImageGen.Timeout)
	assert.Equal(t, 0.5, cfg.ImageGen.RequestsPerSecond)
	assert.Equal(t, 10, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_InvalidDatabasePort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PORT")
}

func TestLoadDatabaseConfig_ReportsEveryInvalidValue(t *testing.T) {
	t.Setenv("DB_PORT", "5432x")
	t.Setenv("DB_MAX_CONNECTIONS", "99999999999")
	t.Setenv("DB_RETRY_DELAY", "soon")

	_, err := LoadDatabaseConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DB_PORT")
	assert.ErrorContains(t, err, "DB_MAX_CONNECTIONS")
	assert.ErrorContains(t, err, "DB_RETRY_DELAY")
	assert.NotContains(t, err.Error(), "DB_CONNECT_TIMEOUT")
}

func TestLoadDatabaseConfig_Defaults(t *testing.T) {
	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			Database: testDBConfig(),
			JWT:      JWTConfig{Secret: "s"},
			ImageGen: imagegen.Config{Fallback: imagegen.StrategyPlaceholder, Timeout: time.Second},
			Catalog:  CatalogConfig{DefaultPageSize: 6, MaxPageSize: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"default secret in production", func(c *Config) {
			c.App.Environment = "production"
			c.JWT.Secret = defaultJWTSecret
		}, "JWT_SECRET"},
		{"unknown fallback", func(c *Config) { c.ImageGen.Fallback = "openai" }, "IMAGEGEN_FALLBACK"},
		{"max below default", func(c *Config) { c.Catalog.MaxPageSize = 3 }, "page sizes"},
		{"zero timeout", func(c *Config) { c.ImageGen.Timeout = 0 }, "IMAGEGEN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func testDBConfig() *database.DBConfig {
	return &database.DBConfig{Password: "secret"}
}
