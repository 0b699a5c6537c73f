package servicenow

import (
	"net/url"
	"strings"
)

// Filter is an ordered list of field=value conditions combined with an
// implicit AND, encoded ServiceNow-style with "^" between conditions.
// Conditions are passed through uninterpreted; the instance owns validation
// of field names and values.
type Filter struct {
	conditions []string
}

// NewFilter builds a Filter from raw condition strings, e.g.
// NewFilter("active=true", "state=2").
func NewFilter(conditions ...string) *Filter {
	return &Filter{conditions: append([]string(nil), conditions...)}
}

// And appends a field=value condition and returns the filter for chaining.
func (f *Filter) And(field, value string) *Filter {
	f.conditions = append(f.conditions, field+"="+value)
	return f
}

// String returns the conditions joined with "^", the form ServiceNow expects
// in sysparm_query.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.conditions, "^")
}

// Query returns the encoded URL query carrying the filter as sysparm_query.
// Reserved characters in conditions are percent-encoded rather than pasted
// into the URL as-is. An empty filter yields an empty query.
func (f *Filter) Query() string {
	expr := f.String()
	if expr == "" {
		return ""
	}
	v := url.Values{}
	v.Set("sysparm_query", expr)
	return v.Encode()
}
