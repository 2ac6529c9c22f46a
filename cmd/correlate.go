// File: cmd/correlate.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/pkg/app"
	"github.com/blackbirdforensics/croweye/pkg/app/correlate"
)

var (
	correlateVolumeLetter string
	correlateMftStore     string
	correlateUsnStore     string
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Join an MFT store and a USN store into a correlated timeline",
	Long: `correlate imports the USN store's journal_events/deleted_entries
rows into the MFT store, then joins MFT records to their most recent USN
events by FRN/FileId, writing the result (and any filename-change history)
into the MFT store's mft_usn_correlated/filename_changes tables.

Example:
  croweye correlate --volume C --mft-store mft.db --usn-store usn.db`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCorrelate()
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)

	correlateCmd.Flags().StringVar(&correlateVolumeLetter, "volume", "", "drive letter being correlated, e.g. C")
	correlateCmd.Flags().StringVar(&correlateMftStore, "mft-store", "", "path to the MFT store (correlated rows are written here)")
	correlateCmd.Flags().StringVar(&correlateUsnStore, "usn-store", "", "path to the USN store to import from")
}

func runCorrelate() error {
	ctx := newAppContext()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	req := &correlate.Request{
		Target:       app.VolumeTarget{Letter: correlateVolumeLetter},
		MFTStorePath: correlateMftStore,
		USNStorePath: correlateUsnStore,
	}

	resp, err := correlate.Handle(ctx, req, cfg)
	if err != nil {
		return err
	}
	return correlate.FormatOutput(resp, ctx.OutputFormat)
}
