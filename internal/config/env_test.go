package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Server.MaxUploadMB)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 9, cfg.Generator.DefaultCount)
	assert.Equal(t, "PT", cfg.Generator.DefaultLang)
	assert.True(t, cfg.Generator.WithPrompts)
	assert.Equal(t, 200, cfg.OCR.DPI)
	assert.Equal(t, "por", cfg.OCR.DefaultLang)
	assert.Equal(t, 120*time.Second, cfg.OCR.PageTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("GEN_DEFAULT_COUNT", "15")
	t.Setenv("GEN_DEFAULT_LANG", "EN")
	t.Setenv("GEN_WITH_PROMPTS", "0")
	t.Setenv("OCR_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 15, cfg.Generator.DefaultCount)
	assert.Equal(t, "EN", cfg.Generator.DefaultLang)
	assert.False(t, cfg.Generator.WithPrompts)
	assert.Equal(t, "anthropic", cfg.OCR.Provider)
	assert.Equal(t, "claude-3-5-sonnet", cfg.OCR.Model)
	assert.Equal(t, "test-key", cfg.OCR.APIKey)
	assert.True(t, cfg.OCR.Enabled)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 7, parseInt("7", 3))
	assert.Equal(t, 3, parseInt("nope", 3))
	assert.True(t, parseBool("YES"))
	assert.False(t, parseBool("off"))
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("bogus", time.Minute))
}
