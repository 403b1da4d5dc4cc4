package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Generation gateway configuration
	GeneratorAPIKey string
	GeneratorAPIURL string

	// S3 plan archive (optional; archival is disabled when empty)
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance from environment variables. In
// development a .env file is loaded first if present.
func LoadConfig() (*Config, error) {
	if IsDevelopment() {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, relying on environment")
		}
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "diet_generator"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GeneratorAPIKey: readAPIKey(),
		GeneratorAPIURL: getEnv("GENERATOR_API_URL", "https://api.deepseek.com/v1/chat/completions"),

		S3BucketName: os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:    os.Getenv("AWS_REGION"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// readAPIKey resolves the generation API key, falling back to a key file the
// way Docker secrets are mounted.
func readAPIKey() string {
	if key := os.Getenv("GENERATOR_API_KEY"); key != "" {
		return key
	}
	if keyFile := os.Getenv("GENERATOR_API_KEY_FILE"); keyFile != "" {
		if data, err := os.ReadFile(filepath.Clean(keyFile)); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ValidateConfig checks that required settings are present for the current
// environment.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if IsProduction() {
		if cfg.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required in production")
		}
		if cfg.GeneratorAPIKey == "" {
			return fmt.Errorf("GENERATOR_API_KEY or GENERATOR_API_KEY_FILE is required in production")
		}
	}
	return nil
}
