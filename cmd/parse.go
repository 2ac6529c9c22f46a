// File: cmd/parse.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/pkg/app"
	"github.com/blackbirdforensics/croweye/pkg/app/parse"
)

var (
	parseVolumeLetter string
	parseStorePath    string
	parseImagePath    string
	parseImageOffset  int64
	parseIncludeSlack bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an NTFS volume's MFT into a store",
	Long: `Parse walks every logical MFT record on a volume (or a raw image
file) and writes the decoded records, $STANDARD_INFORMATION, $FILE_NAME,
and resident $DATA attributes into a SQLite store.

Examples:
  croweye parse --volume C --store ./case/Target_Artifacts/mft_claw_analysis.db
  croweye parse --image disk.raw --offset 1048576 --store mft.db --slack`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse()
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseVolumeLetter, "volume", "", "drive letter to parse, e.g. C")
	parseCmd.Flags().StringVar(&parseStorePath, "store", "", "path to the MFT store to create/append")
	parseCmd.Flags().StringVar(&parseImagePath, "image", "", "raw image file to parse instead of a live volume")
	parseCmd.Flags().Int64Var(&parseImageOffset, "offset", 0, "byte offset of the volume within --image")
	parseCmd.Flags().BoolVar(&parseIncludeSlack, "slack", false, "also scan unallocated MFT slack space for deleted records")

	parseCmd.MarkFlagsMutuallyExclusive("volume", "image")
}

func runParse() error {
	ctx := newAppContext()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	req := &parse.Request{
		Target:       app.VolumeTarget{Letter: parseVolumeLetter},
		StorePath:    parseStorePath,
		ImagePath:    parseImagePath,
		ImageOffset:  parseImageOffset,
		IncludeSlack: parseIncludeSlack,
	}

	resp, err := parse.Handle(ctx, req, cfg)
	if err != nil {
		return err
	}
	return parse.FormatOutput(resp, ctx.OutputFormat)
}
