package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	FX struct {
		ReportingCurrency string             `yaml:"reporting_currency"`
		Providers         []string           `yaml:"providers"`
		ProviderTimeout   time.Duration      `yaml:"provider_timeout"`
		PeggedRates       map[string]float64 `yaml:"pegged_rates"`
		ExchangeRateHost  struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"exchangerate_host"`
		Frankfurter struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"frankfurter"`
		Cache struct {
			Enabled bool          `yaml:"enabled"`
			TTL     time.Duration `yaml:"ttl"`
		} `yaml:"cache"`
	} `yaml:"fx"`
	MarketData struct {
		Enabled bool          `yaml:"enabled"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"market_data"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Audit struct {
		ClickHouse struct {
			Enabled      bool          `yaml:"enabled"`
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port"`
			Database     string        `yaml:"database"`
			User         string        `yaml:"user"`
			Password     string        `yaml:"password"`
			Table        string        `yaml:"table"`
			DialTimeout  time.Duration `yaml:"dial_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"clickhouse"`
		Kafka struct {
			Enabled      bool     `yaml:"enabled"`
			Brokers      []string `yaml:"brokers"`
			Topic        string   `yaml:"topic"`
			RequiredAcks int      `yaml:"required_acks"`
			Compression  string   `yaml:"compression"`
		} `yaml:"kafka"`
	} `yaml:"audit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FX_REPORTING_CURRENCY"); v != "" {
		c.FX.ReportingCurrency = v
	}
	if v := os.Getenv("FX_PROVIDERS"); v != "" {
		c.FX.Providers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Audit.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.Audit.ClickHouse.Host = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.FX.ReportingCurrency == "" {
		c.FX.ReportingCurrency = "USD"
	}
	if len(c.FX.Providers) == 0 {
		c.FX.Providers = []string{"exchangerate.host", "frankfurter.app"}
	}
	if c.FX.ProviderTimeout == 0 {
		c.FX.ProviderTimeout = 10 * time.Second
	}
	if c.FX.PeggedRates == nil {
		// Hard USD pegs used as static fallbacks when live fetch fails.
		c.FX.PeggedRates = map[string]float64{
			"AED": 0.2723,
			"SAR": 0.2666,
			"QAR": 0.2747,
		}
	}
	if c.FX.Cache.TTL == 0 {
		c.FX.Cache.TTL = 5 * time.Minute
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 15 * time.Second
	}
	if c.Audit.Kafka.Topic == "" {
		c.Audit.Kafka.Topic = "fx.audit.records"
	}
	if c.Audit.ClickHouse.Table == "" {
		c.Audit.ClickHouse.Table = "fx_audit_trail"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.FX.ReportingCurrency) != 3 {
		return fmt.Errorf("fx.reporting_currency '%s' must be a 3-letter code", c.FX.ReportingCurrency)
	}
	for _, p := range c.FX.Providers {
		if p != "exchangerate.host" && p != "frankfurter.app" {
			return fmt.Errorf("unknown fx provider '%s'", p)
		}
	}
	for ccy, rate := range c.FX.PeggedRates {
		if len(ccy) != 3 {
			return fmt.Errorf("pegged rate key '%s' must be a 3-letter code", ccy)
		}
		if rate <= 0 {
			return fmt.Errorf("pegged rate for '%s' must be positive", ccy)
		}
	}
	if c.Audit.Kafka.Enabled && len(c.Audit.Kafka.Brokers) == 0 {
		return fmt.Errorf("audit.kafka.brokers cannot be empty when enabled")
	}
	if c.Audit.ClickHouse.Enabled && c.Audit.ClickHouse.Host == "" {
		return fmt.Errorf("audit.clickhouse.host is required when enabled")
	}
	return nil
}
