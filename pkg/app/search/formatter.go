// File: pkg/app/search/formatter.go
package search

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput renders a search Response the way discover.FormatOutput
// does (pkg/app/discover/formatter.go).
func FormatOutput(resp *Response, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Report)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(resp.Report)
	case "table", "":
		return formatTable(resp)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatTable(resp *Response) error {
	report := resp.Report
	if report.TotalFound == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "DATABASE\tTABLE\tROWID\tMATCHED COLUMNS\n")
	for _, db := range report.Databases {
		for _, r := range db.Results {
			fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", db.Database, r.Table, r.RowID, r.MatchedColumns)
		}
		if db.Truncated {
			fmt.Fprintf(w, "%s\t...\t\ttruncated\n", db.Database)
		}
	}
	fmt.Printf("\nFound %d matches in %v\n", report.TotalFound, report.Elapsed)
	return nil
}
