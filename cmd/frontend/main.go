package main

import (
	"finance_ledger/internal/config" // Custom package for configuration
	"finance_ledger/internal/proxy"  // Custom package for the edge proxy
	"finance_ledger/internal/web"    // Embedded UI assets
	"io/fs"                          // Static asset tree
	"net/http"                       // Outbound HTTP client
	"os"                             // Static directory override

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the Edge Proxy
func main() {
	cfg := config.LoadConfig() // Load configuration
	config.SetupLogging(cfg)   // Setup logger

	// UI assets: embedded by default, or a directory on disk
	var assets fs.FS = web.Assets()
	if cfg.StaticDir != "" {
		assets = os.DirFS(cfg.StaticDir)
	}

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Only this process knows where the backend lives
	fwd := proxy.NewForwarder(cfg.BackendURL, &http.Client{})
	r := proxy.NewRouter(fwd, assets)
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	addr := cfg.ListenAddr(config.DefaultFrontendPort)
	logrus.WithField("addr", addr).Info("Finance frontend listening")
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
