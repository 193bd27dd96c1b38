package datomic

import (
	"net/url"
	"time"
)

// Configuration defaults for the REST client
const (
	// DefaultTimeout bounds each HTTP request. The client issues one
	// blocking request per call and never retries.
	DefaultTimeout = 30 * time.Second

	// DefaultStorage is the storage alias most dev-mode REST servers expose.
	DefaultStorage = "dev"
)

// Config holds connection settings for a Datomic REST endpoint
type Config struct {
	// Location is the base URL of the REST server, e.g. "http://localhost:3000/"
	Location string

	// Storage is the storage alias the REST server was started with
	Storage string

	// Timeout bounds each HTTP request; zero means DefaultTimeout
	Timeout time.Duration
}

// DefaultConfig returns a Config for the given endpoint with the default
// storage alias and timeout
func DefaultConfig(location string) Config {
	return Config{
		Location: location,
		Storage:  DefaultStorage,
		Timeout:  DefaultTimeout,
	}
}

// Validate checks if the Config is usable
func (c Config) Validate() error {
	if c.Location == "" {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Location",
			"reason": "must not be empty",
		})
	}
	u, err := url.Parse(c.Location)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Location",
			"value":  c.Location,
			"reason": "must be an absolute URL",
		})
	}
	if c.Storage == "" {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Storage",
			"reason": "must not be empty",
		})
	}
	if c.Timeout < 0 {
		return WithContext(ErrInvalidConfig, map[string]interface{}{
			"field":  "Timeout",
			"value":  c.Timeout,
			"reason": "must be non-negative",
		})
	}
	return nil
}
