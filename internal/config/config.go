package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Defaults mirror the reference deployment: 10 posts per page, the index
// page cached for 20 seconds.
const (
	DefaultPostsPerPage  = 10
	DefaultIndexCacheTTL = 20 * time.Second
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost string
	RedisPort string

	JWTSecret string

	PostsPerPage  int
	IndexCacheTTL time.Duration
	MediaRoot     string
	LogLevel      string
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: getenv("REDIS_PORT", "6379"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PostsPerPage:  getenvInt("POSTS_PER_PAGE", DefaultPostsPerPage),
		IndexCacheTTL: getenvDuration("INDEX_CACHE_TTL", DefaultIndexCacheTTL),
		MediaRoot:     getenv("MEDIA_ROOT", "./media"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
