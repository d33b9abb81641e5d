package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache TTL parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Default values used when the environment leaves a setting empty
const (
	DefaultBackendPort  = "3000"
	DefaultFrontendPort = "5000"
	DefaultBackendURL   = "http://backend:3000"
	DefaultDBDriver     = "mysql"
	DefaultCacheTTL     = 30 * time.Second
)

// Config holds the application configuration
type Config struct {
	Port          string        // Listening port, empty means the binary's default
	DBDriver      string        // mysql, postgres or sqlite
	SQLConnection string        // Store connection string (DSN)
	AutoMigrate   bool          // Run schema migration on first connection
	BackendURL    string        // Ledger Service address, used by the proxy only
	StaticDir     string        // Optional directory overriding the embedded UI
	RedisAddr     string        // Redis server address, empty disables caching
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	CacheTTL      time.Duration // Lifetime of cached list and summary responses
	LogLevel      string        // logrus level name
	IsProd        bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cacheTTL, err := time.ParseDuration(os.Getenv("CACHE_TTL"))
	if err != nil || cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Config{
		Port:          os.Getenv("PORT"),
		DBDriver:      getenvDefault("DB_DRIVER", DefaultDBDriver),
		SQLConnection: sqlConnection(),
		AutoMigrate:   os.Getenv("DB_AUTO_MIGRATE") == "true",
		BackendURL:    getenvDefault("BACKEND_URL", DefaultBackendURL),
		StaticDir:     os.Getenv("STATIC_DIR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       redisDB,
		CacheTTL:      cacheTTL,
		LogLevel:      getenvDefault("LOG_LEVEL", "info"),
		IsProd:        os.Getenv("IS_PROD") == "true",
	}
}

// ListenAddr returns the address to listen on, falling back to def for the port
func (c *Config) ListenAddr(def string) string {
	if c.Port == "" {
		return ":" + def
	}
	return ":" + c.Port
}

// sqlConnection prefers SQL_CONNECTION and otherwise assembles a MySQL DSN
// from the individual DB_* variables.
func sqlConnection() string {
	if dsn := os.Getenv("SQL_CONNECTION"); dsn != "" {
		return dsn
	}
	if os.Getenv("DB_HOST") == "" {
		return "" // Not configured, the connector reports it on first use
	}
	return os.Getenv("DB_USER") + ":" + os.Getenv("DB_PASSWORD") +
		"@tcp(" + os.Getenv("DB_HOST") + ":" + getenvDefault("DB_PORT", "3306") + ")/" +
		os.Getenv("DB_NAME") + "?parseTime=true"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
