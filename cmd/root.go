// File: cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackbirdforensics/croweye/internal/logging"
	"github.com/blackbirdforensics/croweye/pkg/app"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string
)

var rootCmd = &cobra.Command{
	Use:   "croweye",
	Short: "NTFS MFT/USN forensic triage toolkit",
	Long: `croweye parses the Master File Table and USN change journal of an
NTFS volume, correlates the two into a single timeline, and searches the
resulting stores.

Commands:
  parse       Parse the MFT into a store
  usn         Read the USN journal into a store
  correlate   Join MFT and USN stores into a timeline
  discover    Resolve the stores present under a case directory
  search      Search across resolved stores
  config      Print the resolved configuration`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a croweye config directory")
}

// newAppContext builds an app.Context from the persistent flags, wiring a
// real logr.Logger through C10 for structured output.
func newAppContext() *app.Context {
	ctx := app.NewContext()
	ctx.OutputFormat = outputFormat
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Logger = logging.New(os.Stderr, verbose)
	return ctx
}
