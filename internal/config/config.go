package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Environment string // "development" or "production"
	ServerPort  string

	// Database
	DatabaseType string // "sqlite", "postgres" or "mysql"
	DatabasePath string // sqlite file path
	DatabaseURL  string // postgres/mysql connection string

	MigrationsPath string

	// Sessions and CSRF
	SessionDuration time.Duration
	CSRFTokenTTL    time.Duration
	RedisURL        string // optional; enables the redis-backed session store

	// Uploads. The general endpoint and the image-storage endpoint write to
	// different buckets with different quotas, hence two limits.
	UploadMaxSize       int64
	ImageStorageMaxSize int64
	S3Region            string
	S3UploadBucket      string
	S3ImageBucket       string
	S3PublicBaseURL     string

	// Email (Amazon SES)
	SESRegion    string
	SESFromEmail string
	SESFromName  string
	StudioInbox  string // where contact submissions are forwarded
	AppBaseURL   string

	// Admin OAuth (Google)
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Environment:    getEnv("ENV", "development"),
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./willowmoon.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		CSRFTokenTTL:    getEnvDuration("CSRF_TOKEN_TTL", 24*time.Hour),
		RedisURL:        getEnv("REDIS_URL", ""),

		UploadMaxSize:       getEnvInt64("UPLOAD_MAX_SIZE", 5*1024*1024),
		ImageStorageMaxSize: getEnvInt64("IMAGE_STORAGE_MAX_SIZE", 10*1024*1024),
		S3Region:            getEnv("S3_REGION", "eu-west-1"),
		S3UploadBucket:      getEnv("S3_UPLOAD_BUCKET", ""),
		S3ImageBucket:       getEnv("S3_IMAGE_BUCKET", ""),
		S3PublicBaseURL:     getEnv("S3_PUBLIC_BASE_URL", ""),

		SESRegion:    getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Willowmoon Studio"),
		StudioInbox:  getEnv("STUDIO_INBOX", ""),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),
	}
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 reads an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}
