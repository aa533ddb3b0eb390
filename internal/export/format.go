package export

import (
	"fmt"
	"strings"
)

// Format is an output format of the report.
type Format string

const (
	FormatCSV        Format = "csv"
	FormatJSON       Format = "json"
	FormatJSONPretty Format = "json-pretty"
)

// Formats lists the supported formats.
func Formats() []string {
	return []string{string(FormatCSV), string(FormatJSON), string(FormatJSONPretty)}
}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatJSONPretty:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q", s)
}

// IsJSON reports whether the format takes the nested JSON path.
func (f Format) IsJSON() bool {
	return f == FormatJSON || f == FormatJSONPretty
}

// Extension is the file extension for the format.
func (f Format) Extension() string {
	if f.IsJSON() {
		return "json"
	}
	return "csv"
}
