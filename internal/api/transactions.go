package api

import (
	"errors"                         // Error type checks
	"finance_ledger/internal/db"     // Shared store connection
	"finance_ledger/internal/domain" // Importing domain models
	"finance_ledger/internal/utils"  // Utility functions
	"net/http"                       // HTTP status codes
	"time"                           // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// MaxListed caps the number of transactions returned by the list endpoint
const MaxListed = 100

// Summary aggregates over the whole table, zero when it is empty
const summarySelect = "COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS total_income, " +
	"COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS total_expense, " +
	"COALESCE(SUM(amount), 0) AS balance"

// ListTransactionsHandler returns the latest transactions, most recently created first
func ListTransactionsHandler(conn *db.Connector, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Transaction
		found, err := utils.GetCache(ctx, rdb, utils.TransactionsCacheKey, &cached)
		if err != nil {
			logCacheError("GET /api/transactions", err)
		} else if found {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}
		gdb, err := conn.Get(ctx) // Lazily connect on first use
		if err != nil {
			failed(c, "GET /api/transactions", "Failed to fetch transactions", err)
			return
		}
		txs := make([]domain.Transaction, 0, MaxListed)
		// Sort by insert time, not by transaction date; id breaks timestamp ties
		if err := gdb.Order("created_at desc").Order("id desc").Limit(MaxListed).Find(&txs).Error; err != nil {
			failed(c, "GET /api/transactions", "Failed to fetch transactions", err)
			return
		}
		if txs == nil {
			txs = []domain.Transaction{} // Always an array, never null
		}
		if err := utils.SetCache(ctx, rdb, utils.TransactionsCacheKey, txs, ttl); err != nil {
			logCacheError("GET /api/transactions", err)
		}
		c.JSON(http.StatusOK, txs)
	}
}

// CreateTransactionHandler validates, signs and stores a new transaction
func CreateTransactionHandler(conn *db.Connector, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.CreateTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Malformed body or amount that is not a number
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgRequiredFields})
			return
		}
		tx, err := req.ToTransaction()
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			failed(c, "POST /api/transactions", "Failed to create transaction", err)
			return
		}
		ctx := c.Request.Context()
		gdb, err := conn.Get(ctx)
		if err != nil {
			failed(c, "POST /api/transactions", "Failed to create transaction", err)
			return
		}
		// Single INSERT; id and created_at come back on tx
		if err := gdb.Create(tx).Error; err != nil {
			failed(c, "POST /api/transactions", "Failed to create transaction", err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"id":       tx.ID,              // Transaction ID
			"category": tx.Category,        // Category label
			"amount":   tx.Amount.String(), // Signed amount
			"type":     tx.Type,            // Derived type
		}).Info("Transaction created")
		// Cached reads no longer reflect the table
		if err := utils.DeleteCache(ctx, rdb, utils.TransactionsCacheKey, utils.SummaryCacheKey); err != nil {
			logCacheError("POST /api/transactions", err)
		}
		c.JSON(http.StatusCreated, tx)
	}
}

// SummaryHandler returns total income, total expense and balance
func SummaryHandler(conn *db.Connector, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var summary domain.Summary
		found, err := utils.GetCache(ctx, rdb, utils.SummaryCacheKey, &summary)
		if err != nil {
			logCacheError("GET /api/summary", err)
		} else if found {
			c.JSON(http.StatusOK, summary)
			return
		}
		gdb, err := conn.Get(ctx)
		if err != nil {
			failed(c, "GET /api/summary", "Failed to compute summary", err)
			return
		}
		if err := gdb.Model(&domain.Transaction{}).Select(summarySelect).Scan(&summary).Error; err != nil {
			failed(c, "GET /api/summary", "Failed to compute summary", err)
			return
		}
		// Some drivers sum the decimal column in floating point; totals are in cents
		summary.TotalIncome = summary.TotalIncome.Round(2)
		summary.TotalExpense = summary.TotalExpense.Round(2)
		summary.Balance = summary.Balance.Round(2)
		if err := utils.SetCache(ctx, rdb, utils.SummaryCacheKey, summary, ttl); err != nil {
			logCacheError("GET /api/summary", err)
		}
		c.JSON(http.StatusOK, summary)
	}
}

// HealthHandler answers liveness probes without touching the store
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

// failed logs the cause and answers with a generic server error
func failed(c *gin.Context, route, msg string, err error) {
	logrus.WithFields(logrus.Fields{
		"route": route,       // Failing endpoint
		"error": err.Error(), // Error message
	}).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func logCacheError(route string, err error) {
	logrus.WithFields(logrus.Fields{
		"route": route,
		"error": err.Error(),
	}).Warn("Cache unavailable")
}
