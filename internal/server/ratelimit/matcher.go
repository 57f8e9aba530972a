package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for endpoints that are never rate limited.
var unlimited = EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint returns the configuration for a request, or nil when the
// default limit applies. An exact path wins over a "/"-terminated prefix.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		u := unlimited
		return &u
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
