package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseDriver string
	DatabaseURL    string

	RedisURL string

	JWTSecret string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	CORSOrigins string

	Sweep SweepConfig
}

type SweepConfig struct {
	Enabled     bool
	Interval    time.Duration
	Timeout     time.Duration
	RunOnStart  bool
	TaskRetries int
	WindowDays  int
	Timezone    string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "startask-reports"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		Sweep: SweepConfig{
			Enabled:     getBoolEnv("SWEEP_ENABLED", true),
			Interval:    getDurationEnv("SWEEP_INTERVAL", time.Hour),
			Timeout:     getDurationEnv("SWEEP_TIMEOUT", 2*time.Minute),
			RunOnStart:  getBoolEnv("SWEEP_RUN_ON_START", true),
			TaskRetries: getIntEnv("SWEEP_TASK_RETRIES", 2),
			WindowDays:  getIntEnv("DEADLINE_WINDOW_DAYS", 7),
			Timezone:    getEnv("TIMEZONE", "UTC"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves the sweep timezone, falling back to UTC when the name is
// unknown to the tz database.
func (s SweepConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
