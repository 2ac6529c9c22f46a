// File: pkg/app/parse/formatter.go
package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatOutput renders a parse Response the way discover.FormatOutput
// does (pkg/app/discover/formatter.go).
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
		fmt.Printf("Volume %s: parsed %d records (%d failed, %d recovered from slack) into %s in %v\n",
			resp.VolumeLetter, resp.RecordsParsed, resp.RecordsFailed, resp.SlackRecordsFound, resp.StorePath, resp.Elapsed)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
