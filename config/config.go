// Package config holds process-wide application settings. Settings are read
// once at startup from the environment and are read-only afterwards.
package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Settings represents the application configuration
type Settings struct {
	APIName    string
	APIVersion string
	Env        string
	ListenAddr string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string

	JWTSecretKey string
	JWTExpiresIn time.Duration

	ResetExpiresIn time.Duration
}

var (
	settings *Settings
	once     sync.Once
)

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable with a fallback value
func GetEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// Load reads settings from the environment, loading a .env file first if one
// is present. Subsequent calls return the cached settings.
func Load() *Settings {
	once.Do(func() {
		// Missing .env is fine; the environment may be set externally.
		_ = godotenv.Load()

		settings = &Settings{
			APIName:        GetEnv("API_NAME", "Micro Cloud API"),
			APIVersion:     GetEnv("API_VERSION", "1.0.0"),
			Env:            GetEnv("ENV", "dev"),
			ListenAddr:     GetEnv("LISTEN_ADDR", ":8003"),
			DBHost:         GetEnv("DB_HOSTNAME", "localhost"),
			DBPort:         GetEnvInt("DB_PORT", 5432),
			DBUser:         GetEnv("DB_USERNAME", "postgres"),
			DBPassword:     GetEnv("DB_PASSWORD", "postgres"),
			DBName:         GetEnv("DB_NAME", "microcloud"),
			RedisAddr:      GetEnv("REDIS_ADDR", ""),
			JWTSecretKey:   GetEnv("JWT_SECRET_KEY", "insecure-dev-secret"),
			JWTExpiresIn:   time.Duration(GetEnvInt("JWT_EXPIRES_IN_HOURS", 48)) * time.Hour,
			ResetExpiresIn: time.Duration(GetEnvInt("RESET_EXPIRES_IN_HOURS", 24)) * time.Hour,
		}
	})
	return settings
}
