// Package output renders command results in the formats the CLI supports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Render writes v to w in the requested format. Supported formats are
// "json" and "yaml"; anything else is an error so flag typos surface
// instead of silently printing the default.
func Render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %q (valid options: json, yaml)", format)
	}
}

// Structured reports whether format selects a machine-readable rendering.
func Structured(format string) bool {
	return format == "json" || format == "yaml"
}
