// File: pkg/app/correlate/formatter.go
package correlate

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatOutput renders a correlate Response the way discover.FormatOutput
// does.
func FormatOutput(resp *Response, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(resp)
	case "table", "":
		fmt.Printf("Volume %s: %d rows written (%d filename changes), %d with USN, %d without, %d USN rows imported, elapsed=%v\n",
			resp.VolumeLetter, resp.RowsWritten, resp.FilenameChanges, resp.RecordsWithUsn, resp.RecordsWithoutUsn, resp.ImportedUsnRows, resp.Elapsed)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
