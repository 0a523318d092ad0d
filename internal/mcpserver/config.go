package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oas2puml/internal/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// List defaults for the definitions page of the parse tool.
	ListLimit int
	MaxLimit  int

	// Diagram defaults shared with the generate command.
	Diagram config.Settings
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OAS2PUML_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	diagram := config.Default()
	diagram.ApplyEnv(os.Getenv)
	return &serverConfig{
		CacheEnabled:       envBool("OAS2PUML_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OAS2PUML_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OAS2PUML_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OAS2PUML_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OAS2PUML_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OAS2PUML_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("OAS2PUML_MAX_INLINE_SIZE", 10<<20)),
		AllowPrivateIPs:    envBool("OAS2PUML_ALLOW_PRIVATE_IPS", false),
		ListLimit:          envInt("OAS2PUML_LIST_LIMIT", 100),
		MaxLimit:           envInt("OAS2PUML_MAX_LIMIT", 1000),
		Diagram:            diagram,
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
