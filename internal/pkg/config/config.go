package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	AdminTokenTTL time.Duration `env:"ADMIN_TOKEN_TTL, default=168h"`
	UserTokenTTL  time.Duration `env:"USER_TOKEN_TTL,  default=720h"`

	SQLite  SQLiteConfig
	Uploads UploadConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Seed    SeedConfig
}

type SQLiteConfig struct {
	Path  string `env:"SQLITE_PATH,  default=club.db"`
	Debug bool   `env:"SQLITE_DEBUG, default=false"`
}

type UploadConfig struct {
	Dir          string `env:"UPLOAD_DIR,            default=uploads"`
	MaxFileBytes int64  `env:"UPLOAD_MAX_FILE_BYTES, default=10485760"`
	MaxFiles     int    `env:"UPLOAD_MAX_FILES,      default=5"`
}

// MongoConfig enables the MongoDB audit trail when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=club"`
}

// RedisConfig enables ticket purchase idempotency when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// SeedConfig is read by cmd/seed only.
type SeedConfig struct {
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.AdminTokenTTL <= 0 {
		errs = append(errs, errors.New("ADMIN_TOKEN_TTL must be positive"))
	}
	if c.UserTokenTTL <= 0 {
		errs = append(errs, errors.New("USER_TOKEN_TTL must be positive"))
	}
	if c.Uploads.MaxFileBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILE_BYTES must be positive"))
	}
	if c.Uploads.MaxFiles <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILES must be positive"))
	}
	return errors.Join(errs...)
}
