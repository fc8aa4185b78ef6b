package config

import (
	"time"
)

// Config is the top-level configuration container for the possync engine.
// It is populated by merging values from environment variables and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// App holds device identity and the restaurant fields stamped onto
	// every uploaded bill.
	App App `envPrefix:"APP_"`

	// Storage holds local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote API endpoint and timeout settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the tuning knobs of the synchronization engine.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds device- and outlet-level settings.
type App struct {
	// DeviceID identifies this terminal in every upload. Generated once
	// and persisted if left empty.
	// Env: APP_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Token is the opaque bearer credential for the remote API. Acquired
	// by the external auth collaborator; the engine only transports it.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// LogPath is the rotated log file location. Empty means a file next
	// to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`

	// RestaurantName .. FSSAILicense are the outlet identity fields
	// embedded in bill uploads.
	RestaurantName string `env:"RESTAURANT_NAME"`
	Address        string `env:"ADDRESS"`
	GSTIN          string `env:"GSTIN"`
	FSSAILicense   string `env:"FSSAI_LICENSE"`
}

// Storage groups the configuration for local persistence.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds network settings for the remote API client.
type Adapter struct {
	// BaseURL is the backend base URL, e.g. "https://api.example.com".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the per-request timeout for outbound calls.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the timing and batching knobs of the sync engine. Zero values
// are replaced with defaults by [Config.applyDefaults]; the defaults are the
// behaviour the rest of the engine is specified against.
type Sync struct {
	// OfflineThreshold is the minimum offline duration for an
	// offline→online transition to count as genuine rather than a flap.
	// Env: SYNC_OFFLINE_THRESHOLD (default 3s)
	OfflineThreshold time.Duration `env:"OFFLINE_THRESHOLD"`

	// StabilizationDelay is the wait after a qualifying transition before
	// a sync cycle starts, giving the link time to settle.
	// Env: SYNC_STABILIZATION_DELAY (default 2s)
	StabilizationDelay time.Duration `env:"STABILIZATION_DELAY"`

	// FastPathDelay is the best-effort drain delay after enqueuing a
	// mutation while online.
	// Env: SYNC_FAST_PATH_DELAY (default 500ms)
	FastPathDelay time.Duration `env:"FAST_PATH_DELAY"`

	// Interval is the periodic background sync cadence.
	// Env: SYNC_INTERVAL (default 5m)
	Interval time.Duration `env:"INTERVAL"`

	// ProbeInterval is how often the connectivity watcher pings the
	// backend health endpoint.
	// Env: SYNC_PROBE_INTERVAL (default 10s)
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// BillBatchLimit caps how many bills one cycle uploads. A large
	// backlog drains over several cycles; deliberate backpressure.
	// Env: SYNC_BILL_BATCH_LIMIT (default 50)
	BillBatchLimit int `env:"BILL_BATCH_LIMIT"`

	// HistoryLimit caps the retained sync history entries.
	// Env: SYNC_HISTORY_LIMIT (default 20)
	HistoryLimit int `env:"HISTORY_LIMIT"`

	// SeedBillLimit bounds the recent-bill window downloaded by the
	// initial seed.
	// Env: SYNC_SEED_BILL_LIMIT (default 100)
	SeedBillLimit int `env:"SEED_BILL_LIMIT"`
}

// Defaults for the Sync group. These values are what the engine's observable
// behaviour is documented against; override them only for tests.
const (
	DefaultOfflineThreshold   = 3 * time.Second
	DefaultStabilizationDelay = 2 * time.Second
	DefaultFastPathDelay      = 500 * time.Millisecond
	DefaultSyncInterval       = 5 * time.Minute
	DefaultProbeInterval      = 10 * time.Second
	DefaultBillBatchLimit     = 50
	DefaultHistoryLimit       = 20
	DefaultSeedBillLimit      = 100
	DefaultRequestTimeout     = 15 * time.Second
)

func (cfg *Config) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.OfflineThreshold <= 0 {
		cfg.Sync.OfflineThreshold = DefaultOfflineThreshold
	}
	if cfg.Sync.StabilizationDelay <= 0 {
		cfg.Sync.StabilizationDelay = DefaultStabilizationDelay
	}
	if cfg.Sync.FastPathDelay <= 0 {
		cfg.Sync.FastPathDelay = DefaultFastPathDelay
	}
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.ProbeInterval <= 0 {
		cfg.Sync.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Sync.BillBatchLimit <= 0 {
		cfg.Sync.BillBatchLimit = DefaultBillBatchLimit
	}
	if cfg.Sync.HistoryLimit <= 0 {
		cfg.Sync.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Sync.SeedBillLimit <= 0 {
		cfg.Sync.SeedBillLimit = DefaultSeedBillLimit
	}
}

// GetConfig builds the merged, defaulted, validated configuration.
// jsonPathOverride, when non-empty, takes precedence over the CONFIG
// environment variable as the JSON file location.
func GetConfig(jsonPathOverride string) (*Config, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSONPath(jsonPathOverride).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}
