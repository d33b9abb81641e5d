package proxy

import (
	"finance_ledger/internal/middleware" // Request logging
	"io/fs"                              // Static asset tree
	"net/http"                           // HTTP status codes
	"strings"                            // Path checks

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// NewRouter exposes the Ledger Service API through fwd and serves the UI from assets
func NewRouter(fwd *Forwarder, assets fs.FS) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger("frontend"), gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	// Same surface as the Ledger Service
	apiGroup := r.Group("/api")
	apiGroup.GET("/transactions", fwd.Handler())
	apiGroup.POST("/transactions", fwd.Handler())
	apiGroup.GET("/summary", fwd.Handler())

	r.GET("/", indexHandler(assets)) // Root document

	static := gin.WrapH(http.FileServer(http.FS(assets)))
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		// Assets are read-only
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
			return
		}
		static(c) // Static UI assets
	})
	return r
}

func indexHandler(assets fs.FS) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := fs.ReadFile(assets, "index.html")
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Root document missing")
			c.String(http.StatusNotFound, "Not found")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
