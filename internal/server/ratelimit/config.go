package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig reads RATE_LIMIT_* environment variables. Unset or unparsable
// values keep their defaults.
func LoadConfig() *Config {
	if !env("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   env("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: env("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		IdleTimeout:     env("RATE_LIMIT_IDLE_TIMEOUT", time.Hour, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the document writes and the export endpoint,
// which launches a headless browser per request.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/export", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/document/edits", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/document", Method: http.MethodPut, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/document", Method: http.MethodDelete, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/template", Method: http.MethodPut, Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList splits a comma-separated list of client IDs into a set.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
