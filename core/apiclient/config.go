package apiclient

import "time"

// Config provides environment-based configuration for the API client.
type Config struct {
	// BaseURL is the backend origin, e.g. https://api.example.com/api/v1.
	BaseURL string `env:"API_BASE_URL,required"`
	// Timeout bounds each request attempt; the in-flight request is
	// cancelled when it elapses.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	// RetryAttempts is the total number of attempts, including the first.
	RetryAttempts int `env:"API_RETRY_ATTEMPTS" envDefault:"3"`
	// RetryDelay is the delay before the first retry; it doubles after
	// every failed attempt.
	RetryDelay time.Duration `env:"API_RETRY_DELAY" envDefault:"1s"`
}

// DefaultConfig returns a Config with the default transport behavior.
// BaseURL must still be provided by the caller.
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}
