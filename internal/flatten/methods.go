package flatten

import (
	"sort"
	"strings"

	"github.com/raywall/apigw-report/pkg/types"
)

// canonicalMethods is the order method names are listed in joined strings.
var canonicalMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "PATCH", "HEAD", "ANY"}

// KnownMethods returns the HTTP methods API Gateway can bind to a resource.
func KnownMethods() []string {
	out := make([]string, len(canonicalMethods))
	copy(out, canonicalMethods)
	return out
}

// IsKnownMethod reports whether m (any case) is a method API Gateway accepts.
func IsKnownMethod(m string) bool {
	m = strings.ToUpper(strings.TrimSpace(m))
	for _, k := range canonicalMethods {
		if k == m {
			return true
		}
	}
	return false
}

// MethodFilter keeps resources exposing at least one of a set of HTTP methods.
// The zero value is an empty filter that lets everything through.
type MethodFilter struct {
	methods []string
	set     map[string]struct{}
}

// NewMethodFilter normalizes methods to upper case, dropping blanks and duplicates.
func NewMethodFilter(methods ...string) MethodFilter {
	f := MethodFilter{set: make(map[string]struct{}, len(methods))}
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, dup := f.set[m]; dup {
			continue
		}
		f.set[m] = struct{}{}
		f.methods = append(f.methods, m)
	}
	return f
}

// Empty reports whether the filter lets every resource through.
func (f MethodFilter) Empty() bool {
	return len(f.methods) == 0
}

// Methods returns the normalized methods in the order they were given.
func (f MethodFilter) Methods() []string {
	out := make([]string, len(f.methods))
	copy(out, f.methods)
	return out
}

// Allows reports whether r passes the filter.
func (f MethodFilter) Allows(r types.Resource) bool {
	if f.Empty() {
		return true
	}
	for name := range r.ResourceMethods {
		if _, ok := f.set[strings.ToUpper(name)]; ok {
			return true
		}
	}
	return false
}

// Apply returns the resources passing the filter, in input order, each resource
// id at most once. An empty filter returns resources untouched.
func (f MethodFilter) Apply(resources []types.Resource) []types.Resource {
	if f.Empty() {
		return resources
	}
	out := make([]types.Resource, 0, len(resources))
	seen := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		if !f.Allows(r) {
			continue
		}
		if r.ID != "" {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// MethodNames lists the method names bound to a resource: known methods in
// canonical order first, anything else sorted after them.
func MethodNames(methods map[string]types.Method) []string {
	names := make([]string, 0, len(methods))
	for _, k := range canonicalMethods {
		if _, ok := methods[k]; ok {
			names = append(names, k)
		}
	}
	var extra []string
	for name := range methods {
		if !IsKnownMethod(name) || name != strings.ToUpper(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
