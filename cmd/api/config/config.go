package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret        string
	JWTRefreshSecret string

	GeminiAPIKey string

	AllowedOrigins []string

	RedisAddr     string
	RedisPassword string

	GlobalRateLimit  int
	GlobalRateWindow time.Duration
	AuthRateLimit    int
	AuthRateWindow   time.Duration

	MaxBodyBytes int64
}

func New() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		GlobalRateLimit:  100,
		GlobalRateWindow: 15 * time.Minute,
		AuthRateLimit:    5,
		AuthRateWindow:   15 * time.Minute,

		MaxBodyBytes: 10 << 20,
	}
}

// IsProduction drives the secure flag on session cookies.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
