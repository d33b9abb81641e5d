package api

import (
	"finance_ledger/internal/db"         // Shared store connection
	"finance_ledger/internal/middleware" // Request logging
	"net/http"                           // HTTP status codes
	"time"                               // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// NewRouter wires the Ledger Service routes. rdb may be nil to disable caching.
func NewRouter(conn *db.Connector, rdb *redis.Client, cacheTTL time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger("backend"), gin.Recovery())

	r.GET("/health", HealthHandler()) // Liveness endpoint

	apiGroup := r.Group("/api")
	apiGroup.GET("/transactions", ListTransactionsHandler(conn, rdb, cacheTTL)) // List endpoint
	apiGroup.POST("/transactions", CreateTransactionHandler(conn, rdb))         // Create endpoint
	apiGroup.GET("/summary", SummaryHandler(conn, rdb, cacheTTL))               // Summary endpoint

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}
