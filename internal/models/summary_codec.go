package models

import "encoding/json"

// MarshalJSON emits either the full summary or {"error": "..."}.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.encodable())
}

// MarshalYAML emits either the full summary or {error: ...}.
func (s Summary) MarshalYAML() (interface{}, error) {
	return s.encodable(), nil
}
