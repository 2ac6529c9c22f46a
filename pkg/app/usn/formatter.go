// File: pkg/app/usn/formatter.go
package usn

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormatOutput renders a usn Response the way discover.FormatOutput does.
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
		fmt.Printf("Volume %s: %d events (%d excluded), %d gaps, stopped=%s, final_usn=%d, elapsed=%v\n",
			resp.VolumeLetter, resp.EventsEmitted, resp.EventsExcluded, resp.GapsDetected, resp.StoppedReason, resp.FinalUsn, resp.Elapsed)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
