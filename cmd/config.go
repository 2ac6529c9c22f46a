// File: cmd/config.go
package cmd

import (
	"github.com/spf13/cobra"

	intconfig "github.com/blackbirdforensics/croweye/internal/config"
	appconfig "github.com/blackbirdforensics/croweye/pkg/app/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `config loads croweye's configuration the same way every other
command does (defaults, then a config file, then CROWEYE_* environment
variables) and prints the result.

Example:
  croweye config --config ./case-001 -o yaml`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig() error {
	cfg, err := intconfig.Load(configPath)
	if err != nil {
		return err
	}
	return appconfig.Handle(cfg, outputFormat)
}
