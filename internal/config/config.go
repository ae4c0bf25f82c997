// ABOUTME: Configuration loading and parsing for sitechat-gateway
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete sitechat-gateway configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Context ContextConfig `yaml:"context"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// ModelConfig holds the model provider configuration
type ModelConfig struct {
	// Provider selects the backend: "gemini" or "echo" (development)
	Provider string `yaml:"provider"`
	Name     string `yaml:"name"`
	APIKey   string `yaml:"api_key"`

	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// ContextConfig holds the conversation priming configuration. The site
// context and its acknowledgement are prepended as a user/model pair in
// front of every outbound history.
type ContextConfig struct {
	SiteContext     string `yaml:"site_context"`
	Acknowledgement string `yaml:"acknowledgement"`

	// HistoryLimit caps how many trailing history messages are passed
	// to the model. Zero means unbounded.
	HistoryLimit int `yaml:"history_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`

	// File enables rotated file output when set; empty logs to stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default values applied by Load when the file leaves them unset.
const (
	DefaultHTTPAddr     = ":8080"
	DefaultProvider     = "gemini"
	DefaultModelName    = "gemini-2.5-flash-lite"
	DefaultModelTimeout = 60 * time.Second
)

// DefaultAcknowledgement is the model's canned reply to the site
// context priming message.
const DefaultAcknowledgement = "Understood! I am ready to help users with questions about this site and general queries."

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses raw YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if cfg.Model.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Model.TimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing model.timeout %q: %w", cfg.Model.TimeoutRaw, err)
		}
		cfg.Model.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Model.Provider == "" {
		c.Model.Provider = DefaultProvider
	}
	if c.Model.Name == "" {
		c.Model.Name = DefaultModelName
	}
	if c.Model.Timeout == 0 {
		c.Model.Timeout = DefaultModelTimeout
	}
	if c.Context.Acknowledgement == "" && c.Context.SiteContext != "" {
		c.Context.Acknowledgement = DefaultAcknowledgement
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "gemini":
		if c.Model.APIKey == "" {
			return fmt.Errorf("model.api_key is required for the gemini provider")
		}
	case "echo":
		// development provider, no credentials
	default:
		return fmt.Errorf("model.provider must be \"gemini\" or \"echo\", got %q", c.Model.Provider)
	}

	if c.Context.HistoryLimit < 0 {
		return fmt.Errorf("context.history_limit must not be negative")
	}

	return nil
}
