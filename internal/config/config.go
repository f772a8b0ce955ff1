package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Cache    CacheConfig
	Log      LogConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the corpus database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// OpenAIConfig carries the generative-AI collaborator settings. An empty
// APIKey disables the generated tier and image analysis entirely.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	VisionModel string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// CacheConfig bounds the in-memory image analysis cache.
type CacheConfig struct {
	TTL      time.Duration
	Capacity int
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DB_MAX_IDLE_CONNS"), 2),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 10),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DB_CONN_MAX_LIFETIME"), time.Hour),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DB_CONN_MAX_IDLE_TIME"), 10*time.Minute),
	}

	cfg.OpenAI = OpenAIConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:       firstNonEmpty(os.Getenv("OPENAI_MODEL"), "gpt-4.1-mini"),
		VisionModel: firstNonEmpty(os.Getenv("OPENAI_VISION_MODEL"), "gpt-4.1-mini"),
		BaseURL:     os.Getenv("OPENAI_BASE_URL"),
		Temperature: parseFloatWithDefault(os.Getenv("OPENAI_TEMPERATURE"), 0.2),
		Timeout:     parseDurationWithDefault(os.Getenv("OPENAI_TIMEOUT"), 30*time.Second),
	}

	cfg.Cache = CacheConfig{
		TTL:      parseDurationWithDefault(os.Getenv("ANALYSIS_CACHE_TTL"), 24*time.Hour),
		Capacity: parseIntWithDefault(os.Getenv("ANALYSIS_CACHE_CAPACITY"), 100),
	}

	cfg.Log = LogConfig{
		Level:  firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		Format: firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseFloatWithDefault(value string, def float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
