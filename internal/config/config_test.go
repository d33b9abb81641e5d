package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "SQL_CONNECTION", "DB_HOST", "BACKEND_URL", "REDIS_ADDR", "CACHE_TTL", "IS_PROD", "DB_AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, DefaultDBDriver, cfg.DBDriver)
	assert.Equal(t, "", cfg.SQLConnection)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.False(t, cfg.IsProd)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, ":3000", cfg.ListenAddr(DefaultBackendPort))
	assert.Equal(t, ":5000", cfg.ListenAddr(DefaultFrontendPort))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQL_CONNECTION", "ledger.db")
	t.Setenv("BACKEND_URL", "http://127.0.0.1:3000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("IS_PROD", "true")
	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.ListenAddr(DefaultBackendPort))
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "ledger.db", cfg.SQLConnection)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.BackendURL)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.IsProd)
}

func TestSQLConnectionFromParts(t *testing.T) {
	t.Setenv("SQL_CONNECTION", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "ledger")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "finance")
	cfg := LoadConfig()
	assert.Equal(t, "ledger:secret@tcp(db:3306)/finance?parseTime=true", cfg.SQLConnection)
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})

	SetupLogging(&Config{IsProd: true, LogLevel: "debug"})
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	SetupLogging(&Config{LogLevel: "chatty"})
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
