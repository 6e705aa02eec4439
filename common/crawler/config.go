package crawler

import "time"

// Config holds the per-crawl tunables shared by the fetcher and the policy
// loader.
type Config struct {
	UserAgent    string
	FetchTimeout time.Duration
	MaxBodyBytes int64
}

// DefaultConfig returns the default crawl configuration
func DefaultConfig() Config {
	return Config{
		UserAgent:    "coast-crawler/1.0",
		FetchTimeout: 5 * time.Second,
		MaxBodyBytes: 10 << 20,
	}
}
