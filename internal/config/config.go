package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr          = ":8000"
	defaultBackendURL          = "http://localhost:5000/api/v3"
	defaultFetchTimeoutSeconds = 30

	envListenAddr = "CURIECONSOLE_LISTEN_ADDR"
	envBackendURL = "CURIECONSOLE_BACKEND_URL"
)

// Config holds the console server configuration.
type Config struct {
	// ListenAddr is the address the API server binds to.
	ListenAddr string `yaml:"listen_addr"`
	// BackendURL is the root of the versioned document backend.
	BackendURL string `yaml:"backend_url"`
	// FetchTimeoutSeconds bounds each backend request. Zero disables the
	// client-side timeout.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// FetchTimeout returns the configured timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:          defaultListenAddr,
		BackendURL:          defaultBackendURL,
		FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
	}
}

// Load reads a YAML config file and applies environment overrides on top.
// An empty path skips the file and returns defaults plus env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envBackendURL); v != "" {
		cfg.BackendURL = v
	}

	if cfg.FetchTimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("fetch_timeout_seconds must not be negative")
	}
	return cfg, nil
}
