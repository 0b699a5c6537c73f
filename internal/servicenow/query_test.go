package servicenow

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_String(t *testing.T) {
	f := NewFilter("active=true").And("state", "2").And("priority", "1")
	assert.Equal(t, "active=true^state=2^priority=1", f.String())
}

func TestFilter_SingleCondition(t *testing.T) {
	f := NewFilter("short_description=broken")
	assert.Equal(t, "short_description=broken", f.String())
}

func TestFilter_Empty(t *testing.T) {
	f := NewFilter()
	assert.Equal(t, "", f.String())
	assert.Equal(t, "", f.Query())
}

func TestFilter_NilIsEmpty(t *testing.T) {
	var f *Filter
	assert.Equal(t, "", f.String())
	assert.Equal(t, "", f.Query())
}

func TestFilter_QueryRoundTrips(t *testing.T) {
	// Whatever gets encoded must decode back to the exact filter string,
	// including conditions with reserved characters.
	cases := []string{
		"active=true",
		"active=true^state=2",
		"short_description=disk 100% full & rising",
		"caller_id=abc123^sysparm_fields=sys_id",
	}
	for _, expr := range cases {
		f := NewFilter(expr)
		q, err := url.ParseQuery(f.Query())
		require.NoError(t, err)
		assert.Equal(t, expr, q.Get("sysparm_query"))
	}
}

func TestFilter_MalformedConditionPassesThrough(t *testing.T) {
	// Malformed filters are not interpreted locally; the instance owns
	// validation.
	f := NewFilter("^^not=a^^valid^^filter^^")
	q, err := url.ParseQuery(f.Query())
	require.NoError(t, err)
	assert.Equal(t, "^^not=a^^valid^^filter^^", q.Get("sysparm_query"))
}
