// File: cmd/usn.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/pkg/app"
	"github.com/blackbirdforensics/croweye/pkg/app/usn"
)

var (
	usnVolumeLetter string
	usnStorePath    string
	usnStartUsn     uint64
	usnStream       bool
)

var usnCmd = &cobra.Command{
	Use:   "usn",
	Short: "Read an NTFS volume's USN change journal into a store",
	Long: `usn reads $J journal records starting at --start-usn (or the
journal's current FirstUsn when omitted) and writes them, along with any
detected sequence gaps, into a SQLite store.

Examples:
  croweye usn --volume C --store ./case/Target_Artifacts/USN_journal.db
  croweye usn --volume C --store usn.db --stream`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsn()
	},
}

func init() {
	rootCmd.AddCommand(usnCmd)

	usnCmd.Flags().StringVar(&usnVolumeLetter, "volume", "", "drive letter to read, e.g. C")
	usnCmd.Flags().StringVar(&usnStorePath, "store", "", "path to the USN store to create/append")
	usnCmd.Flags().Uint64Var(&usnStartUsn, "start-usn", 0, "USN to resume from; 0 starts from the journal's current FirstUsn")
	usnCmd.Flags().BoolVar(&usnStream, "stream", false, "keep polling for new records instead of stopping at EOF")
}

func runUsn() error {
	ctx := newAppContext()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	req := &usn.Request{
		Target:    app.VolumeTarget{Letter: usnVolumeLetter},
		StorePath: usnStorePath,
		StartUsn:  usnStartUsn,
		Stream:    usnStream,
	}

	resp, err := usn.Handle(ctx, req, cfg)
	if err != nil {
		return err
	}
	return usn.FormatOutput(resp, ctx.OutputFormat)
}
