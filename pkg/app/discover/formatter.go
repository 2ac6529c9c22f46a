// File: pkg/app/discover/formatter.go
package discover

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput formats discovery results according to output format
func FormatOutput(response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(response)
	case "yaml":
		return formatYAML(response)
	case "table", "":
		return formatTable(response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats resolved stores as a table
func formatTable(response *Response) error {
	if len(response.Databases) == 0 {
		fmt.Println("No stores found under the case directory.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "STORE\tTAB\tPATH\tACCESSIBLE\tTABLES\n")
	dbs := make([]int, len(response.Databases))
	for i := range dbs {
		dbs[i] = i
	}
	sort.Slice(dbs, func(i, j int) bool {
		return response.Databases[dbs[i]].LogicalName < response.Databases[dbs[j]].LogicalName
	})
	for _, i := range dbs {
		db := response.Databases[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\n", db.LogicalName, db.TabName, db.Path, db.Accessible, len(db.Tables))
	}

	fmt.Printf("\nFound %d stores in %v\n", len(response.Databases), response.SearchTime)
	return nil
}

// formatJSON formats results as JSON
func formatJSON(response *Response) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(response *Response) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	accessible := 0
	for _, db := range response.Databases {
		if db.Accessible {
			accessible++
		}
	}
	return fmt.Sprintf("Found %d stores (%d accessible) in %v", len(response.Databases), accessible, response.SearchTime)
}
