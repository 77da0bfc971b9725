package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
		BaseURL string
	}

	// Mongo configuration. URI has no default on purpose: persistence is
	// unusable without it and callers must fail fast.
	Mongo struct {
		URI            string
		Database       string
		Collection     string
		ConnectTimeout time.Duration
		QueryTimeout   time.Duration
	}

	// Auth configuration for tokens minted by the external identity provider
	Auth struct {
		Enabled bool
		Secret  string
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
		TrustedProxies []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}

	// Supplier matching service endpoint
	Supplier struct {
		APIURL     string
		Timeout    time.Duration
		ReplyDelay time.Duration
	}

	// Cache settings
	Cache struct {
		Enabled   bool
		RedisAddr string
		TTL       time.Duration
	}
}

var (
	instance *Config
	once     sync.Once
)

// New creates a new Config instance with values from environment variables
// Uses singleton pattern to ensure only one instance exists
func New() *Config {
	once.Do(func() {
		// Load .env file if exists
		godotenv.Load()

		instance = &Config{}

		// Server config
		instance.Server.Port = getEnvString("PORT", "8080")
		instance.Server.Env = getEnvString("APP_ENV", "development")
		instance.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)
		instance.Server.BaseURL = getEnvString("BASE_URL", "http://localhost:"+instance.Server.Port)

		// Mongo config
		instance.Mongo.URI = getEnvString("MONGODB_URI", "")
		instance.Mongo.Database = getEnvString("MONGODB_DATABASE", "userchats")
		instance.Mongo.Collection = getEnvString("MONGODB_COLLECTION", "chats")
		instance.Mongo.ConnectTimeout = getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second)
		instance.Mongo.QueryTimeout = getEnvDuration("MONGODB_QUERY_TIMEOUT", 5*time.Second)

		// Auth config
		instance.Auth.Enabled = getEnvBool("AUTH_ENABLED", false)
		instance.Auth.Secret = getEnvString("AUTH_TOKEN_SECRET", "")

		// Security config
		instance.Security.RateLimit = float64(getEnvInt("RATE_LIMIT", 10))
		instance.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 20)
		instance.Security.TrustedProxies = getEnvStringSlice("TRUSTED_PROXIES", []string{"127.0.0.1"})

		// Logging config
		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")

		// Supplier matching service
		instance.Supplier.APIURL = getEnvString("SUPPLY_CHAIN_API_URL", "")
		instance.Supplier.Timeout = getEnvDuration("SUPPLY_CHAIN_API_TIMEOUT", 15*time.Second)
		instance.Supplier.ReplyDelay = getEnvDuration("ASSISTANT_REPLY_DELAY", 2*time.Second)

		// Cache settings
		instance.Cache.Enabled = getEnvBool("CACHE_ENABLED", false)
		instance.Cache.RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
		instance.Cache.TTL = getEnvDuration("CACHE_TTL", 5*time.Minute)
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
