package config

import (
	"os"
	"strconv"
	"strings"
)

// Supported KV_BACKEND values
const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Store    StoreConfig
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds the Redis connection used when KV_BACKEND=redis
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// StoreConfig selects where the record store keeps its state
type StoreConfig struct {
	Backend         string // KV_BACKEND: memory, mysql or redis
	PersistProfiles bool   // PERSIST_PROFILES: keep registrations under the "profiles" key (false = process memory only)
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "echocity"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "echocity:"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")), // PORT for Render/fly.io; SERVER_PORT for custom
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(getEnv("KV_BACKEND", BackendMemory)),
			PersistProfiles: getEnvBool("PERSIST_PROFILES", true),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// MySQLDSN builds the driver DSN (UTC for consistent timestamps)
func (c DatabaseConfig) MySQLDSN() string {
	return c.User + ":" + c.Password + "@tcp(" + c.Host + ":" + c.Port + ")/" + c.DBName +
		"?parseTime=true&charset=utf8mb4&loc=UTC"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
