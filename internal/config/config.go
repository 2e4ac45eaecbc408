// Package config loads and validates the boardwatch configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no config found (run 'boardwatch init' to create one)")
	ErrInvalid  = errors.New("invalid config")
	ErrExists   = errors.New("config already exists")
)

// Config represents the boardwatch configuration.
type Config struct {
	Version int           `yaml:"version"`
	Backend BackendConfig `yaml:"backend"`
	Alert   AlertConfig   `yaml:"alert,omitempty"`
	Health  HealthConfig  `yaml:"health,omitempty"`
	TUI     TUIConfig     `yaml:"tui,omitempty"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// BackendConfig points at the task repository backend.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url"`
	TokenEnv    string `yaml:"token_env,omitempty"`
	TokenHeader string `yaml:"token_header,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

// AlertConfig controls webhook alerting on backend degradation.
type AlertConfig struct {
	Webhook    string `yaml:"webhook,omitempty"`
	WebhookEnv string `yaml:"webhook_env,omitempty"`
	Cooldown   string `yaml:"cooldown,omitempty"`
}

// HealthConfig controls the background health poll.
type HealthConfig struct {
	Interval string `yaml:"interval,omitempty"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
	ShowTestTasks   bool   `yaml:"show_test_tasks,omitempty"`
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// SetDir sets the config directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// NewDefault creates a Config with default values for the given backend URL.
func NewDefault(backendURL string) *Config {
	return &Config{
		Version: CurrentVersion,
		Backend: BackendConfig{
			BaseURL:     backendURL,
			TokenEnv:    DefaultTokenEnv,
			TokenHeader: DefaultTokenHeader,
			Timeout:     DefaultBackendTimeout,
		},
		Alert: AlertConfig{
			WebhookEnv: DefaultWebhookEnv,
			Cooldown:   DefaultAlertCooldown,
		},
		Health: HealthConfig{Interval: DefaultHealthInterval},
		TUI:    TUIConfig{RefreshInterval: DefaultRefreshInterval},
	}
}

// Token resolves the API token from the configured environment variable.
// An empty result means unauthenticated requests.
func (c *Config) Token() string {
	env := c.Backend.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	return os.Getenv(env)
}

// TokenHeader returns the header name the token is sent under.
func (c *Config) TokenHeader() string {
	if c.Backend.TokenHeader == "" {
		return DefaultTokenHeader
	}
	return c.Backend.TokenHeader
}

// Webhook resolves the alert webhook URL: the explicit field wins, then the
// configured environment variable. Empty disables alerting.
func (c *Config) Webhook() string {
	if c.Alert.Webhook != "" {
		return c.Alert.Webhook
	}
	env := c.Alert.WebhookEnv
	if env == "" {
		env = DefaultWebhookEnv
	}
	return os.Getenv(env)
}

// BackendTimeout parses the backend request timeout.
func (c *Config) BackendTimeout() time.Duration {
	return durationOr(c.Backend.Timeout, DefaultBackendTimeout)
}

// HealthInterval parses the health poll interval.
func (c *Config) HealthInterval() time.Duration {
	return durationOr(c.Health.Interval, DefaultHealthInterval)
}

// AlertCooldown parses the minimum gap between repeat alerts.
func (c *Config) AlertCooldown() time.Duration {
	return durationOr(c.Alert.Cooldown, DefaultAlertCooldown)
}

// RefreshInterval parses the TUI auto-refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	return durationOr(c.TUI.RefreshInterval, DefaultRefreshInterval)
}

func durationOr(value, fallback string) time.Duration {
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("%w: backend.base_url is required", ErrInvalid)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend.base_url %q is not an absolute URL", ErrInvalid, c.Backend.BaseURL)
	}
	for field, value := range map[string]string{
		"backend.timeout":      c.Backend.Timeout,
		"alert.cooldown":       c.Alert.Cooldown,
		"health.interval":      c.Health.Interval,
		"tui.refresh_interval": c.TUI.RefreshInterval,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: invalid %s %q: %w", ErrInvalid, field, value, err)
		}
	}
	return nil
}

// DefaultDir returns the per-user config directory, ~/.config/boardwatch.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, DefaultDirName), nil
}

// Init creates a new config file in the given directory. Fails if one
// already exists.
func Init(dir, backendURL string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(backendURL)
	cfg.SetDir(absDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		return nil, ErrExists
	}
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
