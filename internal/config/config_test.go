package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(viper.New())

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "./uploads", cfg.Storage.UploadPath)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 3, cfg.Worker.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
	assert.Equal(t, 50, cfg.Pipeline.MinResumeWords)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("WORKER_CONCURRENCY", "7")
	t.Setenv("RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("MIN_RESUME_WORDS", "0")
	t.Setenv("DB_ENABLED", "true")

	cfg := Load(viper.New())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 7, cfg.Worker.Concurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.RetryInitialDelay)
	assert.Equal(t, 50, cfg.Pipeline.MinResumeWords, "non-positive values fall back to the default")
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("RETRY_INITIAL_DELAY", "soon")

	cfg := Load(viper.New())
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n"}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
