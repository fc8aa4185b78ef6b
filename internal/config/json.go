package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig mirrors [Config] with JSON tags and string-friendly durations.
// Kept separate so the env-tagged struct stays free of JSON concerns.
type jsonConfig struct {
	App struct {
		DeviceID       string `json:"device_id"`
		Token          string `json:"token"`
		LogPath        string `json:"log_path"`
		RestaurantName string `json:"restaurant_name"`
		Address        string `json:"address"`
		GSTIN          string `json:"gstin"`
		FSSAILicense   string `json:"fssai_license"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		OfflineThreshold   Duration `json:"offline_threshold"`
		StabilizationDelay Duration `json:"stabilization_delay"`
		FastPathDelay      Duration `json:"fast_path_delay"`
		Interval           Duration `json:"interval"`
		ProbeInterval      Duration `json:"probe_interval"`
		BillBatchLimit     int      `json:"bill_batch_limit"`
		HistoryLimit       int      `json:"history_limit"`
		SeedBillLimit      int      `json:"seed_bill_limit"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		App: App{
			DeviceID:       jsonCfg.App.DeviceID,
			Token:          jsonCfg.App.Token,
			LogPath:        jsonCfg.App.LogPath,
			RestaurantName: jsonCfg.App.RestaurantName,
			Address:        jsonCfg.App.Address,
			GSTIN:          jsonCfg.App.GSTIN,
			FSSAILicense:   jsonCfg.App.FSSAILicense,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Sync: Sync{
			OfflineThreshold:   time.Duration(jsonCfg.Sync.OfflineThreshold),
			StabilizationDelay: time.Duration(jsonCfg.Sync.StabilizationDelay),
			FastPathDelay:      time.Duration(jsonCfg.Sync.FastPathDelay),
			Interval:           time.Duration(jsonCfg.Sync.Interval),
			ProbeInterval:      time.Duration(jsonCfg.Sync.ProbeInterval),
			BillBatchLimit:     jsonCfg.Sync.BillBatchLimit,
			HistoryLimit:       jsonCfg.Sync.HistoryLimit,
			SeedBillLimit:      jsonCfg.Sync.SeedBillLimit,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
