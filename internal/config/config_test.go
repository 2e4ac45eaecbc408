package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aximo-works/boardwatch/internal/config"
)

func TestInitAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Init(dir, "https://backend.example.com/api")
	require.NoError(t, err)
	assert.Equal(t, config.CurrentVersion, cfg.Version)

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.com/api", loaded.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, loaded.BackendTimeout())
	assert.Equal(t, 30*time.Second, loaded.HealthInterval())
	assert.Equal(t, 10*time.Minute, loaded.AlertCooldown())
	assert.Equal(t, time.Minute, loaded.RefreshInterval())
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, err := config.Init(dir, "https://backend.example.com")
	require.NoError(t, err)

	_, err = config.Init(dir, "https://other.example.com")
	assert.ErrorIs(t, err, config.ErrExists)
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load(t.TempDir())
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*config.Config)
		expErr bool
	}{
		"Defaults are valid": {
			mutate: func(c *config.Config) {},
		},
		"Missing base URL": {
			mutate: func(c *config.Config) { c.Backend.BaseURL = "" },
			expErr: true,
		},
		"Relative base URL": {
			mutate: func(c *config.Config) { c.Backend.BaseURL = "/api" },
			expErr: true,
		},
		"Unsupported version": {
			mutate: func(c *config.Config) { c.Version = 99 },
			expErr: true,
		},
		"Bad health interval": {
			mutate: func(c *config.Config) { c.Health.Interval = "soon" },
			expErr: true,
		},
		"Empty durations fall back to defaults": {
			mutate: func(c *config.Config) {
				c.Backend.Timeout = ""
				c.Alert.Cooldown = ""
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.NewDefault("https://backend.example.com")
			test.mutate(cfg)

			err := cfg.Validate()
			if test.expErr {
				assert.ErrorIs(t, err, config.ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenComesFromConfiguredEnv(t *testing.T) {
	cfg := config.NewDefault("https://backend.example.com")
	cfg.Backend.TokenEnv = "BOARDWATCH_TEST_TOKEN"
	t.Setenv("BOARDWATCH_TEST_TOKEN", "sekrit")

	assert.Equal(t, "sekrit", cfg.Token())
}

func TestWebhookPrecedence(t *testing.T) {
	cfg := config.NewDefault("https://backend.example.com")
	cfg.Alert.WebhookEnv = "BOARDWATCH_TEST_WEBHOOK"
	t.Setenv("BOARDWATCH_TEST_WEBHOOK", "https://hooks.example.com/env")

	assert.Equal(t, "https://hooks.example.com/env", cfg.Webhook())

	cfg.Alert.Webhook = "https://hooks.example.com/explicit"
	assert.Equal(t, "https://hooks.example.com/explicit", cfg.Webhook())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0o600))

	_, err := config.Load(dir)
	assert.Error(t, err)
}
