// Package export serializes the flattened report to CSV and the nested report
// to JSON, and owns the output file naming.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/raywall/apigw-report/internal/flatten"
	"github.com/raywall/apigw-report/pkg/types"
)

// CSVDelimiter separates cells in the CSV report.
const CSVDelimiter = '|'

var js = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteCSV writes the table with a header row, pipe delimited. An empty table
// writes nothing.
func WriteCSV(w io.Writer, table flatten.Table) error {
	if len(table.Header) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	cw.Comma = CSVDelimiter
	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// WriteJSON writes the report as {"RestApis": [...]}, indented with four
// spaces when pretty is set.
func WriteJSON(w io.Writer, report types.Report, pretty bool) error {
	if report.RestApis == nil {
		report.RestApis = []types.RestAPITree{}
	}
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = js.MarshalIndent(report, "", "    ")
	} else {
		b, err = js.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing json report: %w", err)
	}
	return nil
}
