package polling

import "time"

// DefaultInterval is the pause between two poll cycles.
const DefaultInterval = 2 * time.Second

// Config holds the polling configuration
type Config struct {
	Interval time.Duration
}

// NewConfig creates a polling configuration, falling back to DefaultInterval
// when interval is not positive.
func NewConfig(interval time.Duration) *Config {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Config{Interval: interval}
}
