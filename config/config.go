package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// Document store
	MongoURI            string
	DBName              string
	MongoConnectTimeout time.Duration
	MongoReadPreference string

	// Redis (empty URL disables caching)
	RedisURL string

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Logging
	LogLevel string

	// Fallback mode
	PaginateFallback bool

	// Jobs
	CatalogSyncSchedule string

	// Sentry
	SentryDSN         string
	SentryEnvironment string

	// Secrets ("env" reads everything from the environment)
	SecretsBackend string
	SecretsPrefix  string

	// AWS
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Catalog snapshots to S3 (empty bucket disables them)
	SnapshotBucket        string
	SnapshotPrefix        string
	SnapshotFormat        string
	SnapshotSchedule      string
	SnapshotRetentionDays int
}

// Load loads configuration from environment variables.
// Every key has a default, so an empty environment starts the API in fallback mode.
func Load() *Config {
	environment := getEnv("API_ENVIRONMENT", "development")

	return &Config{
		// API
		APIPort:        getEnv("API_PORT", "5000"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: environment,

		// Document store
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:              getEnv("DB_NAME", "businesses_industry"),
		MongoConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 5*time.Second),
		MongoReadPreference: getEnv("MONGO_READ_PREFERENCE", "primary"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// CORS
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 120),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Fallback mode
		PaginateFallback: getEnvAsBool("PAGINATE_FALLBACK", false),

		// Jobs
		CatalogSyncSchedule: lookupEnv("CATALOG_SYNC_SCHEDULE", "@hourly"),

		// Sentry
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", environment),

		// Secrets
		SecretsBackend: getEnv("SECRETS_BACKEND", "env"),
		SecretsPrefix:  getEnv("SECRETS_PREFIX", ""),

		// AWS
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		// Snapshots
		SnapshotBucket:        getEnv("SNAPSHOT_S3_BUCKET", ""),
		SnapshotPrefix:        getEnv("SNAPSHOT_S3_PREFIX", "snapshots/"),
		SnapshotFormat:        getEnv("SNAPSHOT_FORMAT", "csv"),
		SnapshotSchedule:      lookupEnv("SNAPSHOT_SCHEDULE", "@daily"),
		SnapshotRetentionDays: getEnvAsInt("SNAPSHOT_RETENTION_DAYS", 30),
	}
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return c.APIHost + ":" + c.APIPort
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// lookupEnv distinguishes an unset key from one explicitly set to ""
func lookupEnv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsBool(key string, defaultValue bool) bool {
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}

	return values
}
