package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxUploadMB     int
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// RedisConfig holds store connectivity.
type RedisConfig struct {
	URL string
}

// OCRConfig defines the scanned-document fallback.
type OCRConfig struct {
	Enabled     bool
	Provider    string // "openai"|"anthropic"
	Model       string
	APIKey      string
	DPI         int
	JPEGQuality int
	PageTimeout time.Duration
	DefaultLang string // "por"|"eng"|"por+eng"
}

// GeneratorConfig defines idea-batch defaults used when a request omits them.
type GeneratorConfig struct {
	DefaultCount int
	DefaultLang  string
	WithPrompts  bool
}

// Config is the top-level configuration.
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Axiom     AxiomConfig
	Redis     RedisConfig
	OCR       OCRConfig
	Generator GeneratorConfig
}

// FromEnv loads configuration from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr:            getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:     parseDuration(getEnv("HTTP_READ_TIMEOUT", "30s"), 30*time.Second),
		WriteTimeout:    parseDuration(getEnv("HTTP_WRITE_TIMEOUT", "60s"), 60*time.Second),
		ShutdownTimeout: parseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		MaxUploadMB:     parseInt(getEnv("MAX_UPLOAD_MB", "50"), 50),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", "logs/ideagen.log"),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_ideagen",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		URL: getEnv("REDIS_URL", "redis://localhost:6379"),
	}

	provider := strings.ToLower(getEnv("OCR_PROVIDER", "openai"))
	defaultModel := "gpt-4o"
	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == "anthropic" {
		defaultModel = "claude-3-5-sonnet"
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	cfg.OCR = OCRConfig{
		Enabled:     parseBool(getEnv("OCR_ENABLED", boolDefault(apiKey != ""))),
		Provider:    provider,
		Model:       getEnv("OCR_MODEL", defaultModel),
		APIKey:      apiKey,
		DPI:         parseInt(getEnv("OCR_DPI", "200"), 200),
		JPEGQuality: parseInt(getEnv("OCR_JPEG_QUALITY", "85"), 85),
		PageTimeout: parseDuration(getEnv("OCR_PAGE_TIMEOUT", "120s"), 120*time.Second),
		DefaultLang: getEnv("OCR_LANG", "por"),
	}

	cfg.Generator = GeneratorConfig{
		DefaultCount: parseInt(getEnv("GEN_DEFAULT_COUNT", "9"), 9),
		DefaultLang:  getEnv("GEN_DEFAULT_LANG", "PT"),
		WithPrompts:  parseBool(getEnv("GEN_WITH_PROMPTS", "true")),
	}

	return cfg
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func boolDefault(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
