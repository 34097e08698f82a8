package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selectors for the pluggable collaborators
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	ServerPort int

	// Cart persistence (durable key-value store)
	CartBackend   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CartKeyPrefix string

	// Data service (products, auctions, bids, messages, notifications,
	// orders, order_items, profiles)
	DataBackend string
	PostgresURL string
}

// LoadConfig reads configuration from the environment, optionally seeded
// from a .env file. Every value has a development default; the defaults
// run the whole service on in-memory backends.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: could not load .env file, using environment only")
	}

	config := &Config{
		ServerPort:    8080,
		CartBackend:   getEnvOrDefault("MARKET_CART_BACKEND", BackendMemory),
		CartKeyPrefix: getEnvOrDefault("MARKET_CART_KEY_PREFIX", "market"),
		DataBackend:   getEnvOrDefault("MARKET_DATA_BACKEND", BackendMemory),
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		config.ServerPort = p
	}

	redisHost := getEnvOrDefault("MARKET_REDIS_HOST", "localhost")
	redisPort := getEnvOrDefault("MARKET_REDIS_PORT", "6379")
	config.RedisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	config.RedisPassword = os.Getenv("MARKET_REDIS_PASSWORD")
	if db := os.Getenv("MARKET_REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid MARKET_REDIS_DB %q: %w", db, err)
		}
		config.RedisDB = n
	}

	pgHost := getEnvOrDefault("MARKET_DB_HOST", "localhost")
	pgPort := getEnvOrDefault("MARKET_DB_PORT", "5432")
	pgName := getEnvOrDefault("MARKET_DB_DATABASE", "marketgo")
	pgUser := getEnvOrDefault("MARKET_DB_USERNAME", "postgres")
	pgPassword := getEnvOrDefault("MARKET_DB_PASSWORD", "postgres")
	config.PostgresURL = getEnvOrDefault("MARKET_DB_URL",
		fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, pgHost, pgPort, pgName))

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
