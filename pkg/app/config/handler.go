// File: pkg/app/config/handler.go
//
// Package config implements the "croweye config" command: print the
// resolved Config.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	intconfig "github.com/blackbirdforensics/croweye/internal/config"
)

// Handle prints cfg in the requested output format.
func Handle(cfg *intconfig.Config, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(cfg)
	case "table", "":
		fmt.Printf("batch_size: %d\n", cfg.BatchSize)
		fmt.Printf("max_resident_file_size: %d\n", cfg.MaxResidentFileSize)
		fmt.Printf("database_cache_size: %d\n", cfg.DatabaseCacheSizeMB)
		fmt.Printf("enable_wal_mode: %v\n", cfg.EnableWalMode)
		fmt.Printf("usn_read_buffer_size: %d\n", cfg.UsnReadBufferSize)
		fmt.Printf("usn_max_processing_time_s: %d\n", cfg.UsnMaxProcessingTimeS)
		fmt.Printf("usn_stall_detection_s: %d\n", cfg.UsnStallDetectionS)
		fmt.Printf("search_timeout_s: %d\n", cfg.SearchTimeoutS)
		fmt.Printf("search_result_cap_per_table: %d\n", cfg.SearchResultCapPerTable)
		fmt.Printf("timestamp_sample_size: %d\n", cfg.TimestampSampleSize)
		fmt.Printf("timestamp_success_threshold: %.2f\n", cfg.TimestampSuccessThreshold)
		fmt.Printf("verbose: %v\n", cfg.Verbose)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
