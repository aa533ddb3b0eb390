package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileNameLayout is the UTC timestamp prefix of every report file.
const FileNameLayout = "20060102_150405"

// FileName builds <UTC timestamp>_apigateway_report_<region>[_<method>...][_<label>].<ext>.
func FileName(now time.Time, region string, methods []string, label string, format Format) string {
	var b strings.Builder
	b.WriteString(now.UTC().Format(FileNameLayout))
	b.WriteString("_apigateway_report_")
	b.WriteString(region)
	for _, m := range methods {
		b.WriteString("_")
		b.WriteString(strings.ToLower(m))
	}
	if label != "" {
		b.WriteString("_")
		b.WriteString(label)
	}
	b.WriteString(".")
	b.WriteString(format.Extension())
	return b.String()
}

// Create makes dir when missing and creates name inside it.
func Create(dir, name string) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("creating output file %s: %w", path, err)
	}
	return f, path, nil
}
