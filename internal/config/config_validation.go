package config

import "strings"

// validate checks that the final merged [Config] satisfies the invariants
// the engine relies on at startup. Called after defaults are applied, so
// only genuinely missing values fail here.
func (cfg *Config) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
