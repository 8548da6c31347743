package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CatalogPath string
	AnswersDir  string
	ImagesDir   string

	SessionTTL       time.Duration
	ThrottleLimit    int
	ThrottleInterval time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 3306),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBDatabase: getEnv("DB_DATABASE", "polyplabeler"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CatalogPath: getEnv("CATALOG_PATH", "questions.json"),
		AnswersDir:  getEnv("ANSWERS_DIR", "answers"),
		ImagesDir:   getEnv("IMAGES_DIR", "static/images"),

		SessionTTL:       getEnvDuration("SESSION_TTL", 24*time.Hour),
		ThrottleLimit:    getEnvInt("THROTTLE_LIMIT", 60),
		ThrottleInterval: getEnvDuration("THROTTLE_INTERVAL", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
