// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formats accepted by --output
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects regular and error output. A nil writer restores the
// process default.
func SetOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

// PrintJSON writes data as indented JSON
func PrintJSON(data interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintYAML writes data as YAML
func PrintYAML(data interface{}) error {
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// PrintFormatted prints data as JSON or YAML when asked to, and otherwise
// calls table
func PrintFormatted(format string, data interface{}, table func() error) error {
	switch format {
	case FormatJSON:
		return PrintJSON(data)
	case FormatYAML:
		return PrintYAML(data)
	case FormatTable, "":
		return table()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// PrintTable writes tabular data
func PrintTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, col := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, col)
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

// PrintMessage writes a plain message
func PrintMessage(msg string) {
	fmt.Fprintln(stdout, msg)
}

// PrintError writes an error message to the error output
func PrintError(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
