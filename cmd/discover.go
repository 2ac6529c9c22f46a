// File: cmd/discover.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/internal/discovery"
	"github.com/blackbirdforensics/croweye/pkg/app/discover"
)

var (
	discoverCaseDir      string
	discoverForceRefresh bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Resolve the stores present under a case directory",
	Long: `discover inspects <case-dir>/Target_Artifacts, matches known store
filenames or table signatures, and reports each resolved store's table
and timestamp-column metadata.

Example:
  croweye discover --case ./case-001`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiscover()
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&discoverCaseDir, "case", "", "case directory to inspect")
	discoverCmd.Flags().BoolVar(&discoverForceRefresh, "force-refresh", false, "bypass the cache and re-resolve from disk")
}

func runDiscover() error {
	ctx := newAppContext()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cache := discovery.New(cfg, ctx.Logger)
	req := &discover.Request{CaseDir: discoverCaseDir, ForceRefresh: discoverForceRefresh}

	resp, err := discover.Handle(ctx, req, cache)
	if err != nil {
		return err
	}
	return discover.FormatOutput(resp, ctx.OutputFormat)
}
