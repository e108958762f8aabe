package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration keys, shared by the config file, flags and LCP_* variables.
const (
	KeyInstance               = "instance"
	KeyUserToken              = "user_token"
	KeyTempToken              = "temp_token"
	KeyBaseURL                = "base_url"
	KeyOutput                 = "output"
	KeyVerbose                = "verbose"
	KeyConnectionLimit        = "connection_limit"
	KeyConnectionLimitPeriod  = "connection_limit_period"
	KeyErrorOnConnectionLimit = "error_on_connection_limit"
)

// outputFormat returns the --output setting.
func outputFormat() string {
	return viper.GetString(KeyOutput)
}

// writeJSON writes value as indented JSON.
func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// writeYAML writes value as YAML.
func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// render writes value as JSON or YAML, or calls table for table output.
func render(cmd *cobra.Command, value any, table func(w io.Writer) error) error {
	w := cmd.OutOrStdout()

	switch outputFormat() {
	case constants.FormatJSON:
		return writeJSON(w, value)
	case constants.FormatYAML:
		return writeYAML(w, value)
	default:
		if table == nil {
			return writeJSON(w, value)
		}

		return table(w)
	}
}

// renderTable writes rows under header.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	cells := make([]any, len(header))
	for i, name := range header {
		cells[i] = name
	}

	table := tablewriter.NewWriter(w)
	table.Header(cells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// propertyRows renders a property/value table.
func propertyRows(w io.Writer, rows [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, rows)
}

// cell formats a value for table output. Record cells of the form
// {"value": x} show x.
func cell(value any) string {
	if wrapped, ok := value.(map[string]any); ok {
		if inner, found := wrapped["value"]; found {
			value = inner
		}
	}

	var text string

	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		text = typed
	case map[string]any, []any:
		data, err := json.Marshal(typed)
		if err != nil {
			text = fmt.Sprint(typed)
		} else {
			text = string(data)
		}
	default:
		text = fmt.Sprint(typed)
	}

	return truncate(text)
}

// truncate shortens text to StringTruncationLength runes.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= constants.StringTruncationLength {
		return text
	}

	return string(runes[:constants.StringTruncationLength-3]) + "..."
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
