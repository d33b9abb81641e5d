package main

import (
	"context"                        // context package is needed for Redis operations
	"finance_ledger/internal/api"    // Custom package for API handlers
	"finance_ledger/internal/config" // Custom package for configuration
	"finance_ledger/internal/db"     // Custom package for the store connection

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the Ledger Service
func main() {
	cfg := config.LoadConfig() // Load configuration
	config.SetupLogging(cfg)   // Setup logger

	// The store is connected lazily on the first request that needs it
	var opts []db.Option
	if cfg.AutoMigrate {
		opts = append(opts, db.WithAutoMigrate())
	}
	conn := db.NewConnector(cfg.DBDriver, cfg.SQLConnection, opts...)
	defer conn.Close()

	// Redis is optional; without it every read goes to the store
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(conn, redisClient, cfg.CacheTTL)
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	addr := cfg.ListenAddr(config.DefaultBackendPort)
	logrus.WithField("addr", addr).Info("Finance backend listening")
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
