// Package config provides configuration loading for the application.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"sparsefields/internal"
	"sparsefields/internal/logger"
)

type Config struct {
	Port      string
	ModelsDir string
	Redis     RedisConfig
	CORS      CORSConfig
}

type RedisConfig struct {
	Addr        string // пусто: кэш карт полей выключен
	CacheTTLSec int64
}

type CORSConfig struct {
	AllowOrigin      string
	AllowCredentials bool
}

func LoadConfig() *Config {
	// ищем корень проекта (там где go.mod)
	if root, err := internal.FindRepoRoot(); err == nil {
		// пробуем загрузить .env из корня
		_ = godotenv.Load(filepath.Join(root, ".env"))
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		ModelsDir: getEnv("MODELS_DIR", "./db"),
		Redis: RedisConfig{
			Addr:        getEnvOptional("REDIS_ADDR"),
			CacheTTLSec: getEnvInt64("FIELDMAP_CACHE_TTL_SEC", 7200),
		},
		CORS: CORSConfig{
			AllowOrigin:      getEnv("CORS_ALLOW_ORIGIN", "*"),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		},
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	logger.Warn("env_default", map[string]any{
		"key":      key,
		"fallback": fallback,
	})
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logger.Warn("env_invalid_bool", map[string]any{
			"key":      key,
			"value":    value,
			"fallback": fallback,
		})
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 0 {
		logger.Warn("env_invalid_int", map[string]any{
			"key":      key,
			"value":    value,
			"fallback": fallback,
		})
		return fallback
	}
	return parsed
}

func getEnvOptional(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
