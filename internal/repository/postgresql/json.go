package postgresql

import "encoding/json"

// decodeJSONColumn reads a jsonb column that, depending on the write path,
// may hold either the native structure or a double-encoded JSON string.
// Anything unparseable leaves dst untouched, so callers get the zero value.
func decodeJSONColumn(raw []byte, dst interface{}) {
	if len(raw) == 0 {
		return
	}
	if json.Unmarshal(raw, dst) == nil {
		return
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		_ = json.Unmarshal([]byte(s), dst)
	}
}

// encodeJSONColumn marshals a value for a jsonb column, writing SQL NULL for
// nil pointers and nil slices.
func encodeJSONColumn(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
