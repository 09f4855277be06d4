package cli

import (
	"encoding/json"
	"io"
)

// printJSON writes indented JSON, the CLI's only output format
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
