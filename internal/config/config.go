// File: internal/config/config.go
//
// Package config loads the engine's tunables via Viper: a search-path
// list, environment-variable overrides, and mapstructure-tagged defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every knob enumerated in spec.md §6.
type Config struct {
	BatchSize               int     `mapstructure:"batch_size"`
	MaxResidentFileSize     int64   `mapstructure:"max_resident_file_size"`
	DatabaseCacheSizeMB     int     `mapstructure:"database_cache_size"`
	EnableWalMode           bool    `mapstructure:"enable_wal_mode"`
	UsnReadBufferSize       int     `mapstructure:"usn_read_buffer_size"`
	UsnMaxProcessingTimeS   int     `mapstructure:"usn_max_processing_time_s"`
	UsnStallDetectionS      int     `mapstructure:"usn_stall_detection_s"`
	SearchTimeoutS          int     `mapstructure:"search_timeout_s"`
	SearchResultCapPerTable int     `mapstructure:"search_result_cap_per_table"`
	TimestampSampleSize     int     `mapstructure:"timestamp_sample_size"`
	TimestampSuccessThreshold float64 `mapstructure:"timestamp_success_threshold"`

	// Verbose mirrors the CLI's global verbosity flag so non-CLI callers
	// (tests, library use) can opt into verbose logging too.
	Verbose bool `mapstructure:"verbose"`
}

// Load builds a Config from defaults, an optional config file discovered
// on a fixed search path, and CROWEYE_*-prefixed environment variables,
// in ascending priority.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("crow-eye")
	v.SetConfigType("yaml")
	if explicitPath != "" {
		v.AddConfigPath(explicitPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.crow-eye")
	v.AddConfigPath("/etc/crow-eye")

	setDefaults(v)

	v.SetEnvPrefix("CROWEYE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: error reading config file: %w", err)
		}
		// Config file not found is OK; defaults + env apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: error unmarshaling: %w", err)
	}
	return &cfg, nil
}

// Default returns a Config populated with built-in defaults only, useful
// for tests and library callers that do not want file/env layering.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("batch_size", 1000)
	v.SetDefault("max_resident_file_size", 1<<20)
	v.SetDefault("database_cache_size", 64)
	v.SetDefault("enable_wal_mode", true)
	v.SetDefault("usn_read_buffer_size", 1<<20)
	v.SetDefault("usn_max_processing_time_s", 3600)
	v.SetDefault("usn_stall_detection_s", 300)
	v.SetDefault("search_timeout_s", 60)
	v.SetDefault("search_result_cap_per_table", 1000)
	v.SetDefault("timestamp_sample_size", 100)
	v.SetDefault("timestamp_success_threshold", 0.80)
	v.SetDefault("verbose", false)
}
