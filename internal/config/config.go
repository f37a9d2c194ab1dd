// Package config loads service settings by layering defaults, an optional
// YAML file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// cutoffLayout is the wire format for the cutoff date setting.
const cutoffLayout = "2006-01-02"

// Config holds all service settings.
type Config struct {
	// InputPath points at the Storm Events table (.csv or .xlsx).
	InputPath string `koanf:"input_path"`

	// OutputPath receives the JSON report; "-" or empty means stdout.
	OutputPath string `koanf:"output_path"`

	// CutoffDate (YYYY-MM-DD) excludes records beginning earlier.
	CutoffDate string `koanf:"cutoff_date"`

	// TopN bounds both ranked lists in the report.
	TopN int `koanf:"top_n"`

	HTTPAddr        string        `koanf:"http_addr"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Watch makes serve mode recompute the report when the input changes.
	Watch bool `koanf:"watch"`

	KafkaEnabled bool     `koanf:"kafka_enabled"`
	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		OutputPath:      "-",
		CutoffDate:      "1996-01-01",
		TopN:            10,
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 10 * time.Second,
		KafkaBrokers:    []string{"localhost:9092"},
		KafkaTopic:      "storm-impact-reports",
	}
}

// Load builds a Config by layering, lowest precedence first: defaults, a YAML
// file named by STORM_CONFIG (if set), then STORM_-prefixed environment
// variables (STORM_INPUT_PATH, STORM_TOP_N, ...).
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("STORM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Broker lists arrive comma-separated (STORM_KAFKA_BROKERS=a:9092,b:9092).
	envProvider := env.ProviderWithValue("STORM_", ".", func(key, value string) (string, interface{}) {
		k := strings.ToLower(strings.TrimPrefix(key, "STORM_"))
		if k == "kafka_brokers" {
			return k, strings.Split(value, ",")
		}
		return k, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TopN <= 0 {
		return errors.New("top_n must be positive")
	}
	if _, err := c.Cutoff(); err != nil {
		return err
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("kafka_brokers is required when kafka is enabled")
		}
		if c.KafkaTopic == "" {
			return errors.New("kafka_topic is required when kafka is enabled")
		}
	}
	return nil
}

// Cutoff parses the configured cutoff date as a UTC midnight instant.
func (c *Config) Cutoff() (time.Time, error) {
	t, err := time.Parse(cutoffLayout, c.CutoffDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff_date %q: %w", c.CutoffDate, err)
	}
	return t, nil
}
