package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// ResultLimit is the default page size for list-shaped tool results.
	ResultLimit int
	// MaxLimit caps any client-requested limit.
	MaxLimit int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASDOCS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		ResultLimit: envInt("OASDOCS_RESULT_LIMIT", 100),
		MaxLimit:    envInt("OASDOCS_MAX_LIMIT", 1000),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
