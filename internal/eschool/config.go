package eschool

import "time"

// DefaultBaseURL is the production portal API root.
const DefaultBaseURL = "https://app.eschool.center/ec-server"

// Config holds the settings of the portal client.
type Config struct {
	BaseURL   string
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig returns the production endpoint with a 15 second per-call
// timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		TimeoutMs: 15000,
	}
}

// Timeout returns the per-call timeout, never less than one second.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs < 1000 {
		return time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
