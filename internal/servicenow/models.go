package servicenow

import "encoding/json"

// Record is a single Table API record. The field set is whatever the instance
// returned for the query; nothing is fixed or validated locally and every
// field must be treated as optional. The raw bytes are kept so re-serializing
// a record reproduces its fields exactly as received.
type Record struct {
	raw    json.RawMessage
	fields map[string]interface{}
}

// TableResponse is the JSON envelope of a Table API list query.
type TableResponse struct {
	Result []Record `json:"result"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	r.raw = append(r.raw[:0], data...)
	r.fields = fields
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// Field returns the decoded value for name and whether the field was present.
func (r Record) Field(name string) (interface{}, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// StringField returns the value for name when it is a string, "" otherwise.
func (r Record) StringField(name string) string {
	if s, ok := r.fields[name].(string); ok {
		return s
	}
	return ""
}

// ReferenceField resolves a reference field to its sys_id. ServiceNow returns
// references either as a plain string or as {"link": ..., "value": ...}
// depending on sysparm_exclude_reference_link.
func (r Record) ReferenceField(name string) string {
	switch v := r.fields[name].(type) {
	case string:
		return v
	case map[string]interface{}:
		if s, ok := v["value"].(string); ok {
			return s
		}
	}
	return ""
}

// Commonly read incident fields.

func (r Record) SysID() string            { return r.StringField("sys_id") }
func (r Record) ShortDescription() string { return r.StringField("short_description") }
func (r Record) CallerID() string         { return r.ReferenceField("caller_id") }
