package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Populated from environment variables (a .env file is loaded by cmd/*).
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Storage StorageConfig
	Cache   CacheConfig
	Worker  WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string
	MaxUploadMB int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

// =====================================================
// OBJECT STORAGE
// =====================================================

const (
	StorageDriverMinIO = "minio"
	StorageDriverS3    = "s3"
)

type StorageConfig struct {
	Driver    string // minio | s3
	Endpoint  string // localhost:9000 for minio, https://<account>.r2.cloudflarestorage.com for R2
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// PresignExpiry is the lifetime of presigned upload URLs.
	PresignExpiry time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type WorkerConfig struct {
	Concurrency     int
	OrphanAuditCron string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Restaurant Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 10),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer: getEnv("JWT_ISSUER", ""),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverMinIO)),
			Endpoint:      getEnv("STORAGE_ENDPOINT", ""),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("STORAGE_BUCKET", "restaurant-images"),
			Region:        getEnv("STORAGE_REGION", "us-east-1"),
			UseSSL:        getEnvBool("STORAGE_USE_SSL", false),
			PresignExpiry: getEnvDuration("STORAGE_PRESIGN_EXPIRY", time.Hour),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 15*time.Minute),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 5),
			OrphanAuditCron: getEnv("ORPHAN_AUDIT_CRON", "0 3 * * *"),
		},
	}

	// S3 talks to AWS when no endpoint is given; MinIO always needs one.
	if cfg.Storage.Driver == StorageDriverMinIO && cfg.Storage.Endpoint == "" {
		cfg.Storage.Endpoint = "localhost:9000"
	}

	// ORPHAN_AUDIT_CRON=off turns the scheduled audit off
	if strings.EqualFold(cfg.Worker.OrphanAuditCron, "off") {
		cfg.Worker.OrphanAuditCron = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must not keep their development defaults
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverMinIO, StorageDriverS3:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected %q or %q)", c.Storage.Driver, StorageDriverMinIO, StorageDriverS3)
	}

	if c.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET must be set")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Storage.AccessKey == "minioadmin" {
			return fmt.Errorf("STORAGE_ACCESS_KEY must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
