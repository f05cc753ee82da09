package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Counsel  CounselConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// CounselConfig holds the text-completion upstream configuration
type CounselConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables.
// A missing JWT secret is a startup failure: the server must never run
// with an unsigned session scheme.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttlHours, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if ttlHours < 1 {
		ttlHours = 24
	}

	counselTimeout, _ := strconv.Atoi(getEnv("COUNSEL_TIMEOUT_SECONDS", "60"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "5000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "lexconnect"),
		},
		JWT: JWTConfig{
			Secret:   secret,
			TokenTTL: time.Duration(ttlHours) * time.Hour,
		},
		Counsel: CounselConfig{
			BaseURL: getEnv("COUNSEL_API_URL", ""),
			APIKey:  getEnv("COUNSEL_API_KEY", ""),
			Timeout: time.Duration(counselTimeout) * time.Second,
		},
	}

	AppConfig = config

	log.Printf("Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://lexconnect.example.com"
	}
	return origins
}
