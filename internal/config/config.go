package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/glicocare/glicocare/internal/logger"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	GeminiAPIKey string
	FlashModel   string
	ProModel     string
	HTTPPort     string
	Storage      StorageConfig
	Logger       LoggerConfig
}

type StorageConfig struct {
	Driver     string
	SQLitePath string
	RedisHost  string
	RedisPort  string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		FlashModel:   getEnvOrDefault("GEMINI_FLASH_MODEL", "gemini-1.5-flash"),
		ProModel:     getEnvOrDefault("GEMINI_PRO_MODEL", "gemini-1.5-pro"),
		HTTPPort:     getEnvOrDefault("HTTP_PORT", "8080"),
		Storage: StorageConfig{
			Driver:     getEnvOrDefault("STORAGE_DRIVER", StorageSQLite),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "data/glicocare.db"),
			RedisHost:  getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort:  getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	switch cfg.Storage.Driver {
	case StorageSQLite, StorageRedis, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	return cfg, nil
}
