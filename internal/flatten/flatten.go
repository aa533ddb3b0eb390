// Package flatten turns the REST API → resources → methods tree returned by API
// Gateway into flat rows for tabular export, and into the nested report used
// for JSON export.
package flatten

import (
	"sort"
	"strconv"
	"strings"

	"github.com/raywall/apigw-report/pkg/types"
)

// Separator joins multi-valued fields into a single cell.
const Separator = ", "

// Column is a named cell of a flat row.
type Column struct {
	Name  string
	Value string
}

// FlatAPIRow is the tabular projection of a RestAPI. Nil fields were absent on
// the source and produce no column.
type FlatAPIRow struct {
	ID                                  string
	Name                                *string
	Description                         *string
	CreatedDate                         *string
	Version                             *string
	Warnings                            *string
	BinaryMediaTypes                    *string
	MinimumCompressionSize              *string
	APIKeySource                        *string
	Policy                              *string
	Tags                                *string
	DisableExecuteAPIEndpoint           *string
	RootResourceID                      *string
	EndpointConfigurationTypes          *string
	EndpointConfigurationVpcEndpointIDs *string
}

// Columns lists the present fields in output order.
func (r FlatAPIRow) Columns() []Column {
	cols := []Column{{Name: "id", Value: r.ID}}
	cols = appendOptional(cols, "name", r.Name)
	cols = appendOptional(cols, "description", r.Description)
	cols = appendOptional(cols, "createdDate", r.CreatedDate)
	cols = appendOptional(cols, "version", r.Version)
	cols = appendOptional(cols, "warnings", r.Warnings)
	cols = appendOptional(cols, "binaryMediaTypes", r.BinaryMediaTypes)
	cols = appendOptional(cols, "minimumCompressionSize", r.MinimumCompressionSize)
	cols = appendOptional(cols, "apiKeySource", r.APIKeySource)
	cols = appendOptional(cols, "policy", r.Policy)
	cols = appendOptional(cols, "tags", r.Tags)
	cols = appendOptional(cols, "disableExecuteApiEndpoint", r.DisableExecuteAPIEndpoint)
	cols = appendOptional(cols, "rootResourceId", r.RootResourceID)
	cols = appendOptional(cols, "EndpointConfigurationTypes", r.EndpointConfigurationTypes)
	cols = appendOptional(cols, "EndpointConfigurationVpcEndpointIds", r.EndpointConfigurationVpcEndpointIDs)
	return cols
}

// FlatResourceRow is the tabular projection of a Resource, tagged with the
// REST API it belongs to.
type FlatResourceRow struct {
	RestAPIID       string
	ResourceID      string
	ParentID        *string
	Path            string
	ResourceMethods *string
}

// Columns lists the present fields in output order.
func (r FlatResourceRow) Columns() []Column {
	cols := []Column{
		{Name: "RestApiId", Value: r.RestAPIID},
		{Name: "ResourceId", Value: r.ResourceID},
	}
	cols = appendOptional(cols, "ParentId", r.ParentID)
	cols = append(cols, Column{Name: "Path", Value: r.Path})
	return appendOptional(cols, "ResourceMethods", r.ResourceMethods)
}

// FlattenAPI projects a RestAPI to a flat row. Multi-valued fields are joined
// with Separator and the endpoint configuration is unnested into two columns.
func FlattenAPI(api types.RestAPI) FlatAPIRow {
	row := FlatAPIRow{
		ID:               api.ID,
		Name:             api.Name,
		Description:      api.Description,
		CreatedDate:      api.CreatedDate,
		Version:          api.Version,
		Warnings:         joined(api.Warnings),
		BinaryMediaTypes: joined(api.BinaryMediaTypes),
		APIKeySource:     api.APIKeySource,
		Policy:           api.Policy,
		Tags:             joinedTags(api.Tags),
		RootResourceID:   api.RootResourceID,
	}
	if api.MinimumCompressionSize != nil {
		s := strconv.FormatInt(int64(*api.MinimumCompressionSize), 10)
		row.MinimumCompressionSize = &s
	}
	if api.DisableExecuteAPIEndpoint != nil {
		s := strconv.FormatBool(*api.DisableExecuteAPIEndpoint)
		row.DisableExecuteAPIEndpoint = &s
	}
	if ec := api.EndpointConfiguration; ec != nil {
		row.EndpointConfigurationTypes = joined(ec.Types)
		row.EndpointConfigurationVpcEndpointIDs = joined(ec.VpcEndpointIDs)
	}
	return row
}

// FlattenResources projects the resources of one REST API to flat rows,
// keeping only those the filter allows. pathPart is dropped: path already
// carries it.
func FlattenResources(apiID string, resources []types.Resource, filter MethodFilter) []FlatResourceRow {
	kept := filter.Apply(resources)
	rows := make([]FlatResourceRow, 0, len(kept))
	for _, r := range kept {
		row := FlatResourceRow{
			RestAPIID:  apiID,
			ResourceID: r.ID,
			ParentID:   r.ParentID,
			Path:       r.Path,
		}
		if r.ResourceMethods != nil {
			s := strings.Join(MethodNames(r.ResourceMethods), Separator)
			row.ResourceMethods = &s
		}
		rows = append(rows, row)
	}
	return rows
}

// MergedRow is one line of the CSV report. Either side may be nil.
type MergedRow struct {
	API      *FlatAPIRow
	Resource *FlatResourceRow
}

// MergeRows full-outer-joins API rows and resource rows on the REST API id.
// Rows are grouped by API in input order, resources in input order within a
// group. Resources whose API is missing come last, with a nil API side.
func MergeRows(apiRows []FlatAPIRow, resourceRows []FlatResourceRow) []MergedRow {
	known := make(map[string]struct{}, len(apiRows))
	for _, a := range apiRows {
		known[a.ID] = struct{}{}
	}

	byAPI := make(map[string][]*FlatResourceRow)
	var orphans []string
	for i := range resourceRows {
		rr := &resourceRows[i]
		if _, ok := byAPI[rr.RestAPIID]; !ok {
			if _, isKnown := known[rr.RestAPIID]; !isKnown {
				orphans = append(orphans, rr.RestAPIID)
			}
		}
		byAPI[rr.RestAPIID] = append(byAPI[rr.RestAPIID], rr)
	}

	merged := make([]MergedRow, 0, len(apiRows)+len(resourceRows))
	for i := range apiRows {
		api := &apiRows[i]
		group := byAPI[api.ID]
		if len(group) == 0 {
			merged = append(merged, MergedRow{API: api})
			continue
		}
		for _, rr := range group {
			merged = append(merged, MergedRow{API: api, Resource: rr})
		}
	}
	for _, id := range orphans {
		for _, rr := range byAPI[id] {
			merged = append(merged, MergedRow{Resource: rr})
		}
	}
	return merged
}

// ToJSONTree nests each API's filtered resources under it. Method mappings
// stay mappings; APIs with no entry in resourcesByAPI get an empty list.
func ToJSONTree(apis []types.RestAPI, resourcesByAPI map[string][]types.Resource, filter MethodFilter) types.Report {
	report := types.Report{RestApis: make([]types.RestAPITree, 0, len(apis))}
	for _, api := range apis {
		resources := filter.Apply(resourcesByAPI[api.ID])
		if resources == nil {
			resources = []types.Resource{}
		}
		report.RestApis = append(report.RestApis, types.RestAPITree{RestAPI: api, Resources: resources})
	}
	return report
}

func appendOptional(cols []Column, name string, v *string) []Column {
	if v == nil {
		return cols
	}
	return append(cols, Column{Name: name, Value: *v})
}

func joined(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	s := strings.Join(values, Separator)
	return &s
}

func joinedTags(tags map[string]string) *string {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+tags[k])
	}
	s := strings.Join(pairs, Separator)
	return &s
}
