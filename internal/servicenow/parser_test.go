package servicenow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTickets_EmptyResult(t *testing.T) {
	tickets, err := ParseTickets([]byte(`{"result": []}`))
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestParseTickets_MissingResultKey(t *testing.T) {
	tickets, err := ParseTickets([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestParseTickets_Records(t *testing.T) {
	body := []byte(`{"result": [
		{"sys_id": "a1", "short_description": "printer on fire"},
		{"sys_id": "a2", "short_description": "coffee machine down", "u_custom_field": 7}
	]}`)
	tickets, err := ParseTickets(body)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, "a1", tickets[0].SysID())
	assert.Equal(t, "printer on fire", tickets[0].ShortDescription())
	assert.Equal(t, "coffee machine down", tickets[1].ShortDescription())

	// Fields outside the common set stay reachable.
	v, ok := tickets[1].Field("u_custom_field")
	require.True(t, ok)
	assert.Equal(t, float64(7), v)
}

func TestParseTickets_Malformed(t *testing.T) {
	_, err := ParseTickets([]byte(`{"result": "not an array"}`))
	assert.Error(t, err)
}

func TestParseTickets_RoundTripPreservesOrder(t *testing.T) {
	// Re-serializing an extracted record must reproduce its fields in the
	// order received.
	raw := `{"result":[{"sys_id":"abc123","short_description":"x","zzz":"1","aaa":"2","nested":{"b":1,"a":2}}]}`
	tickets, err := ParseTickets([]byte(raw))
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	out, err := json.Marshal(tickets[0])
	require.NoError(t, err)
	assert.Equal(t, `{"sys_id":"abc123","short_description":"x","zzz":"1","aaa":"2","nested":{"b":1,"a":2}}`, string(out))
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2026-03-01 14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC), got)

	got, err = ParseTime("2026-03-01T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC), got)

	got, err = ParseTime("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseTime("yesterday-ish")
	assert.Error(t, err)
}
