package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 7*24*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.UserTokenTTL)
	assert.Equal(t, "club.db", cfg.SQLite.Path)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.EqualValues(t, 10<<20, cfg.Uploads.MaxFileBytes)
	assert.Equal(t, 5, cfg.Uploads.MaxFiles)
	assert.Empty(t, cfg.Mongo.URI)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 4, cfg.Audit.Workers)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"ENV":              "production",
		"ADMIN_TOKEN_TTL":  "12h",
		"UPLOAD_MAX_FILES": "2",
		"REDIS_ADDR":       "redis:6379",
		"MONGO_URI":        "mongodb://mongo:27017",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, 2, cfg.Uploads.MaxFiles)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
}

func TestLoadWith_SecretRequired(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.ErrorIs(t, err, envconfig.ErrMissingRequired)

	_, err = LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_SECRET": "  "}))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadWith_RejectsNonPositiveLimits(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"USER_TOKEN_TTL":   "0s",
		"UPLOAD_MAX_FILES": "0",
	}))
	require.Error(t, err)
	assert.ErrorContains(t, err, "USER_TOKEN_TTL")
	assert.ErrorContains(t, err, "UPLOAD_MAX_FILES")
}
