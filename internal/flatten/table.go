package flatten

// Table is a merged report ready for tabular serialization.
type Table struct {
	Header []string
	Rows   [][]string
}

// apiColumnOrder and resourceColumnOrder fix the header layout. They list
// every column FlatAPIRow.Columns and FlatResourceRow.Columns can produce, in
// the same order.
var (
	apiColumnOrder = []string{
		"id", "name", "description", "createdDate", "version", "warnings",
		"binaryMediaTypes", "minimumCompressionSize", "apiKeySource", "policy",
		"tags", "disableExecuteApiEndpoint", "rootResourceId",
		"EndpointConfigurationTypes", "EndpointConfigurationVpcEndpointIds",
	}
	resourceColumnOrder = []string{"RestApiId", "ResourceId", "ParentId", "Path", "ResourceMethods"}
)

// Header returns the columns present in at least one row: API columns first,
// then resource columns, each in their fixed order. The layout does not depend
// on which row happens to come first.
func Header(rows []MergedRow) []string {
	seenAPI := make(map[string]struct{})
	seenRes := make(map[string]struct{})
	for _, row := range rows {
		if row.API != nil {
			markSeen(seenAPI, row.API.Columns())
		}
		if row.Resource != nil {
			markSeen(seenRes, row.Resource.Columns())
		}
	}
	header := presentIn(apiColumnOrder, seenAPI)
	return append(header, presentIn(resourceColumnOrder, seenRes)...)
}

// Tabulate computes the header once and lays every row out against it.
// Absent values become empty cells.
func Tabulate(rows []MergedRow) Table {
	header := Header(rows)
	t := Table{Header: header, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		t.Rows = append(t.Rows, row.Values(header))
	}
	return t
}

// Columns lists the API side's columns followed by the resource side's.
func (m MergedRow) Columns() []Column {
	var cols []Column
	if m.API != nil {
		cols = append(cols, m.API.Columns()...)
	}
	if m.Resource != nil {
		cols = append(cols, m.Resource.Columns()...)
	}
	return cols
}

// Values returns the row's cells in header order.
func (m MergedRow) Values(header []string) []string {
	byName := make(map[string]string, len(header))
	for _, c := range m.Columns() {
		byName[c.Name] = c.Value
	}
	out := make([]string, len(header))
	for i, name := range header {
		out[i] = byName[name]
	}
	return out
}

func markSeen(seen map[string]struct{}, cols []Column) {
	for _, c := range cols {
		seen[c.Name] = struct{}{}
	}
}

func presentIn(order []string, seen map[string]struct{}) []string {
	var out []string
	for _, name := range order {
		if _, ok := seen[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
