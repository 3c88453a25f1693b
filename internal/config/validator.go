package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"meater/internal/db"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	// Validate durations (must be positive)
	for _, key := range []string{"poll_interval", "http_timeout"} {
		if !viper.IsSet(key) {
			continue
		}
		if d := duration(key); d <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %v", key, d))
		}
	}

	// Validate API URL
	if viper.IsSet("api_url") {
		raw := viper.GetString("api_url")
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errors = append(errors, fmt.Sprintf("api_url must be an absolute http(s) URL, got: %q", raw))
		}
	}

	// Validate metrics listen address (if set)
	if addr := viper.GetString("metrics_addr"); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errors = append(errors, fmt.Sprintf("metrics_addr must be host:port, got: %q", addr))
		}
	}

	// Validate history backend
	if t := viper.GetString("history.type"); !db.SupportedType(t) {
		errors = append(errors, fmt.Sprintf("history.type must be sqlite or postgres, got: %q", t))
	}
	if viper.GetBool("history.enabled") && strings.HasPrefix(strings.ToLower(viper.GetString("history.type")), "postgres") && viper.GetString("history.dsn") == "" {
		errors = append(errors, "history.dsn is required for the postgres history store")
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}
