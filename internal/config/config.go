package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable, e.g. BROWSE_MAX_REDIRECTS.
const Prefix = "browse"

// Config is flat in the environment, the embedded groups only organize the
// Go side.
type Config struct {
	FetchConfig
	DialConfig
	LogConfig

	// DefaultDocument is loaded when no address is given on the command line.
	DefaultDocument string `envconfig:"DEFAULT_DOCUMENT" default:"test.html"`
}

type FetchConfig struct {
	MaxRedirects int           `envconfig:"MAX_REDIRECTS" default:"5"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"90s"`
	UserAgent    string        `envconfig:"USER_AGENT" default:"go-browse/0.1"`
}

type DialConfig struct {
	ConnectTimeout time.Duration     `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	Network        string            `envconfig:"NETWORK" default:"ip"`
	DNSServer      string            `envconfig:"DNS_SERVER"`
	StaticHosts    map[string]string `envconfig:"STATIC_HOSTS"`
}

type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.MaxRedirects < 0 {
		return nil, fmt.Errorf("failed to load config: negative MAX_REDIRECTS %d", cfg.MaxRedirects)
	}
	switch cfg.Network {
	case "ip", "ip4", "ip6":
	default:
		return nil, fmt.Errorf("failed to load config: NETWORK must be one of ip, ip4, ip6, got %q", cfg.Network)
	}
	return &cfg, nil
}

// Default returns the configuration used when the environment sets nothing.
func Default() *Config {
	return &Config{
		FetchConfig: FetchConfig{
			MaxRedirects: 5,
			ReadTimeout:  30 * time.Second,
			IdleTimeout:  90 * time.Second,
			UserAgent:    "go-browse/0.1",
		},
		DialConfig: DialConfig{
			ConnectTimeout: 10 * time.Second,
			Network:        "ip",
		},
		LogConfig: LogConfig{
			Level: "warn",
		},
		DefaultDocument: "test.html",
	}
}
