// File: cmd/search.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/blackbirdforensics/croweye/internal/config"
	"github.com/blackbirdforensics/croweye/pkg/app/search"
)

var (
	searchCaseDir       string
	searchTerm          string
	searchCaseSensitive bool
	searchExactMatch    bool
	searchRegex         bool
	searchStart         string
	searchEnd           string
	searchResultCap     int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search across every store resolved under a case directory",
	Long: `search runs a term match (substring, exact, or regex) against
every resolved store's text columns, narrowed by an optional time window
detected per timestamp column.

Examples:
  croweye search --case ./case-001 --term cmd.exe
  croweye search --case ./case-001 --term secret --regex --start "2024-01-01" --end "2024-02-01"`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchCaseDir, "case", "", "case directory to search")
	searchCmd.Flags().StringVar(&searchTerm, "term", "", "search term")
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "case-sensitive matching")
	searchCmd.Flags().BoolVar(&searchExactMatch, "exact", false, "require an exact field match instead of substring")
	searchCmd.Flags().BoolVar(&searchRegex, "regex", false, "treat --term as a regular expression")
	searchCmd.Flags().StringVar(&searchStart, "start", "", "only rows at/after this time (YYYY-MM-DD[ HH:MM:SS])")
	searchCmd.Flags().StringVar(&searchEnd, "end", "", "only rows at/before this time (YYYY-MM-DD[ HH:MM:SS])")
	searchCmd.Flags().IntVar(&searchResultCap, "limit", 0, "maximum results per table; 0 uses the configured default")
}

func runSearch() error {
	ctx := newAppContext()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	req := &search.Request{
		CaseDir:           searchCaseDir,
		Term:              searchTerm,
		CaseSensitive:     searchCaseSensitive,
		ExactMatch:        searchExactMatch,
		Regex:             searchRegex,
		Start:             searchStart,
		End:               searchEnd,
		ResultCapPerTable: searchResultCap,
	}

	resp, err := search.Handle(ctx, req, cfg)
	if err != nil {
		return err
	}
	return search.FormatOutput(resp, ctx.OutputFormat)
}
