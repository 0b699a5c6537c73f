package servicenow

import (
	"encoding/json"
	"time"
)

// ParseTickets extracts the record array under the "result" key of a Table
// API response body. An empty result array is a valid empty collection, not
// an error.
func ParseTickets(data []byte) ([]Record, error) {
	var resp TableResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// ParseTime tries the timestamp layouts ServiceNow emits for datetime fields.
// An empty string parses to the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	layouts := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02",
		"2006-01-02 15:04",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
