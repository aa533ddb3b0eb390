package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raywall/apigw-report/internal/flatten"
	"github.com/raywall/apigw-report/pkg/types"
)

func str(s string) *string { return &s }

func TestWriteCSVPipeDelimited(t *testing.T) {
	table := flatten.Table{
		Header: []string{"id", "name", "RestApiId", "ResourceId", "Path", "ResourceMethods"},
		Rows: [][]string{
			{"a1", "Demo", "a1", "r2", "/x", "GET, POST"},
			{"a2", "", "", "", "", ""},
		},
	}
	var buf bytes.Buffer

	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "id|name|RestApiId|ResourceId|Path|ResourceMethods\n" +
		"a1|Demo|a1|r2|/x|GET, POST\n" +
		"a2|||||\n"
	if got := buf.String(); got != want {
		t.Errorf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, flatten.Table{}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func demoReport() types.Report {
	apis := []types.RestAPI{{ID: "a1", Name: str("Demo")}}
	byAPI := map[string][]types.Resource{
		"a1": {
			{ID: "r1", Path: "/", ResourceMethods: map[string]types.Method{"GET": {}}},
			{ID: "r2", Path: "/x", ResourceMethods: map[string]types.Method{"POST": {}}},
		},
	}
	return flatten.ToJSONTree(apis, byAPI, flatten.NewMethodFilter("post"))
}

func TestWriteJSONNestedResources(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteJSON(&buf, demoReport(), false); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := `{"RestApis":[{"id":"a1","name":"Demo","Resources":[{"id":"r2","path":"/x","resourceMethods":{"POST":{}}}]}]}`
	if got := buf.String(); got != want {
		t.Errorf("json =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteJSONPrettyUsesFourSpaces(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteJSON(&buf, demoReport(), true); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	if !strings.Contains(buf.String(), "\n    \"RestApis\"") {
		t.Errorf("expected 4-space indentation, got\n%s", buf.String())
	}
}

func TestWriteJSONEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, types.Report{}, false); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := buf.String(); got != `{"RestApis":[]}` {
		t.Errorf("json = %s", got)
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2020, 1, 18, 15, 22, 25, 0, time.FixedZone("CET", 3600))
	tests := []struct {
		name    string
		methods []string
		label   string
		format  Format
		want    string
	}{
		{"plain", nil, "", FormatCSV, "20200118_142225_apigateway_report_us-east-2.csv"},
		{"methods", []string{"GET", "post"}, "", FormatJSON, "20200118_142225_apigateway_report_us-east-2_get_post.json"},
		{"label", []string{"GET"}, "audit", FormatJSONPretty, "20200118_142225_apigateway_report_us-east-2_get_audit.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(now, "us-east-2", tt.methods, tt.label, tt.format); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateMakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	f, path, err := Create(dir, "report.csv")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	if path != filepath.Join(dir, "report.csv") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected directory to exist: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": FormatCSV, "JSON": FormatJSON, " json-pretty ": FormatJSONPretty} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
	if FormatJSONPretty.Extension() != "json" || FormatCSV.Extension() != "csv" {
		t.Error("unexpected extensions")
	}
}
