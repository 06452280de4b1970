package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend    BackendConfig    `yaml:"backend"`
	Bridge     BridgeConfig     `yaml:"bridge"`
	HealthPoll HealthPollConfig `yaml:"health_poll"`
}

// BackendConfig locates the prediction backend the shell proxies to.
type BackendConfig struct {
	URL            string `yaml:"url" env:"BACKEND_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// BridgeConfig controls the local server the front end invokes commands on.
type BridgeConfig struct {
	Port           int      `yaml:"port" env:"BRIDGE_PORT"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// HealthPollConfig controls the background backend health probe.
type HealthPollConfig struct {
	Schedule string `yaml:"schedule"`
	Disabled bool   `yaml:"disabled"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err):
		// No config file is fine: the shell runs on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.Backend.URL == "" {
		cfg.Backend.URL = os.Getenv("BACKEND_URL")
	}
	if cfg.Bridge.Port == 0 {
		if v := os.Getenv("BRIDGE_PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid BRIDGE_PORT %q: %w", v, err)
			}
			cfg.Bridge.Port = port
		}
	}

	if cfg.Backend.URL == "" {
		cfg.Backend.URL = "http://localhost:8000"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	if cfg.Bridge.Port == 0 {
		cfg.Bridge.Port = 8080
	}
	if cfg.HealthPoll.Schedule == "" {
		cfg.HealthPoll.Schedule = "@every 30s"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend URL %q is not a valid URL: %w", c.Backend.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q is missing a host", c.Backend.URL)
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend timeout must not be negative, got %d", c.Backend.TimeoutSeconds)
	}
	if c.Bridge.Port < 1 || c.Bridge.Port > 65535 {
		return fmt.Errorf("bridge port %d is out of range", c.Bridge.Port)
	}
	return nil
}

// Timeout returns the backend HTTP client timeout as a duration.
func (b *BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Addr returns the listen address for the bridge server.
func (b *BridgeConfig) Addr() string {
	return fmt.Sprintf(":%d", b.Port)
}
