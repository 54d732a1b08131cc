package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/tiffanyadora/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Remote store API
	StoreAPIURL       string        `env:"STORE_API_URL" envDefault:"http://localhost:8000"`
	StoreAPITimeout   time.Duration `env:"STORE_API_TIMEOUT" envDefault:"30s"`
	StoreAPIRetries   int           `env:"STORE_API_RETRIES" envDefault:"3"`
	BreakerTimeout    time.Duration `env:"STORE_API_BREAKER_TIMEOUT" envDefault:"30s"`
	BreakerMinReqs    uint32        `env:"STORE_API_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerFailRatio  float64       `env:"STORE_API_BREAKER_FAILURE_RATIO" envDefault:"0.5"`

	// Local bolt database (favorites, recent searches)
	BoltPath string `env:"STOREFRONT_DB_PATH" envDefault:"storefront.db"`

	// Notifications
	NotificationTTL time.Duration `env:"NOTIFICATION_TTL" envDefault:"3s"`

	// Search
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// pprof
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	u, err := url.Parse(c.StoreAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid store API URL: %q", c.StoreAPIURL)
	}
	if c.BreakerFailRatio <= 0 || c.BreakerFailRatio > 1 {
		return fmt.Errorf("breaker failure ratio must be in (0, 1]: %g", c.BreakerFailRatio)
	}
	return nil
}
