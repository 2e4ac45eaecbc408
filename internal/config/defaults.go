package config

// Config file layout constants.
const (
	// ConfigFileName is the name of the config file inside the config dir.
	ConfigFileName = "config.yml"

	// DefaultDirName is the per-user config directory under ~/.config.
	DefaultDirName = "boardwatch"

	// CurrentVersion is the config schema version written by init.
	CurrentVersion = 1
)

// Default field values.
const (
	DefaultTokenEnv        = "BOARDWATCH_API_TOKEN"
	DefaultTokenHeader     = "X-API-Token"
	DefaultWebhookEnv      = "BOARDWATCH_ALERT_WEBHOOK"
	DefaultBackendTimeout  = "15s"
	DefaultHealthInterval  = "30s"
	DefaultAlertCooldown   = "10m"
	DefaultRefreshInterval = "60s"
)
