package flatten

import (
	"reflect"
	"testing"

	"github.com/raywall/apigw-report/pkg/types"
)

func TestNewMethodFilterNormalizes(t *testing.T) {
	f := NewMethodFilter(" get", "POST", "Get", "", "options")
	if got := f.Methods(); !reflect.DeepEqual(got, []string{"GET", "POST", "OPTIONS"}) {
		t.Errorf("Methods() = %v", got)
	}
	if f.Empty() {
		t.Error("expected non-empty filter")
	}
}

func TestMethodFilterAllows(t *testing.T) {
	tests := []struct {
		name    string
		filter  MethodFilter
		methods []string
		want    bool
	}{
		{"zero value allows all", MethodFilter{}, nil, true},
		{"match", NewMethodFilter("get"), []string{"GET"}, true},
		{"no match", NewMethodFilter("delete"), []string{"GET", "POST"}, false},
		{"no methods", NewMethodFilter("get"), nil, false},
		{"lower case key on resource", NewMethodFilter("PATCH"), []string{"patch"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Allows(resource("r", "/", tt.methods...)); got != tt.want {
				t.Errorf("Allows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMethodFilterApplyDedupesByID(t *testing.T) {
	resources := []types.Resource{
		resource("r1", "/", "GET"),
		resource("r1", "/", "GET"),
		resource("r2", "/x", "GET"),
	}
	got := NewMethodFilter("GET").Apply(resources)
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestMethodNames(t *testing.T) {
	methods := map[string]types.Method{
		"OPTIONS": {}, "GET": {}, "X-CUSTOM": {}, "DELETE": {}, "head": {},
	}
	want := []string{"GET", "DELETE", "OPTIONS", "X-CUSTOM", "head"}
	if got := MethodNames(methods); !reflect.DeepEqual(got, want) {
		t.Errorf("MethodNames() = %v, want %v", got, want)
	}
}

func TestIsKnownMethod(t *testing.T) {
	for _, m := range []string{"get", "ANY", " patch "} {
		if !IsKnownMethod(m) {
			t.Errorf("expected %q to be known", m)
		}
	}
	if IsKnownMethod("TRACE") {
		t.Error("TRACE is not an API Gateway method")
	}
}
