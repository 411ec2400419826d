package cypher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seuros/cypherkit/src/logging"
)

// Config holds compiler configuration
type Config struct {
	// Logging holds logging configuration
	Logging *logging.Config

	// Observability holds telemetry configuration
	Observability *ObservabilityConfig
}

// DefaultConfig returns a silent configuration with telemetry routed to the
// global OpenTelemetry providers.
func DefaultConfig() *Config {
	return &Config{
		Logging:       logging.DefaultConfig(),
		Observability: DefaultObservabilityConfig(),
	}
}

// FileConfig is the YAML form of Config.
type FileConfig struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Observability struct {
		Tracing *bool `yaml:"tracing"`
		Metrics *bool `yaml:"metrics"`
	} `yaml:"observability"`
}

// ParseConfig reads a YAML configuration. Log output goes to w. Unknown
// fields are rejected; an empty document yields DefaultConfig.
func ParseConfig(data []byte, w io.Writer) (*Config, error) {
	var fc FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return fc.Build(w)
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string, w io.Writer) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data, w)
}

// Build turns the file form into a Config.
func (fc *FileConfig) Build(w io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	if fc.Logging.Level != "" {
		level := logging.ParseLogLevel(fc.Logging.Level)
		if level == logging.LogLevelInfo && !strings.EqualFold(strings.TrimSpace(fc.Logging.Level), "info") {
			return nil, fmt.Errorf("unknown log level %q", fc.Logging.Level)
		}
		lc, err := logging.NewConfig(fc.Logging.Format, level, w)
		if err != nil {
			return nil, err
		}
		cfg.Logging = lc
	} else if fc.Logging.Format != "" {
		if _, err := logging.New(fc.Logging.Format, logging.LogLevelInfo, w); err != nil {
			return nil, err
		}
		cfg.Logging.Format = fc.Logging.Format
	}

	if fc.Observability.Tracing != nil {
		cfg.Observability.EnableTracing = *fc.Observability.Tracing
	}
	if fc.Observability.Metrics != nil {
		cfg.Observability.EnableMetrics = *fc.Observability.Metrics
	}
	return cfg, nil
}

// Option configures compilation.
type Option func(*Config)

// WithConfig replaces the whole configuration. Nil sections keep their
// defaults.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		if cfg == nil {
			return
		}
		if cfg.Logging != nil {
			c.Logging = cfg.Logging
		}
		if cfg.Observability != nil {
			c.Observability = cfg.Observability
		}
	}
}

// WithLogger routes compiler logs to logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Config) {
		if logger == nil {
			return
		}
		lc := *c.Logging
		lc.Logger = logger
		c.Logging = &lc
	}
}

// WithObservability sets the telemetry configuration.
func WithObservability(oc *ObservabilityConfig) Option {
	return func(c *Config) {
		if oc != nil {
			c.Observability = oc
		}
	}
}

func buildConfig(opts []Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logging.Logger == nil {
		lc := *cfg.Logging
		lc.Logger = &logging.NoOpLogger{}
		cfg.Logging = &lc
	}
	return cfg
}
