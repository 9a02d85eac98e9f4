package store

import "encoding/json"

// The backend stores list-valued lot fields in JSONB columns, and
// depending on the write path they come back either as native JSON
// arrays or as JSON-encoded strings. The Flex types accept both forms
// and treat malformed JSON as an empty list, never as a fatal error.

// FlexIntList is an int list tolerant of double-encoded JSON.
type FlexIntList []int

// UnmarshalJSON accepts `[1,2]`, `"[1,2]"`, and garbage (as empty).
func (l *FlexIntList) UnmarshalJSON(data []byte) error {
	*l = nil
	var ints []int
	if err := json.Unmarshal(data, &ints); err == nil {
		*l = ints
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &ints); err == nil {
			*l = ints
		}
	}
	return nil
}

// FlexStringList is a string list tolerant of double-encoded JSON.
type FlexStringList []string

// UnmarshalJSON accepts a native array, a string-encoded array, and
// garbage (as empty).
func (l *FlexStringList) UnmarshalJSON(data []byte) error {
	*l = nil
	var strs []string
	if err := json.Unmarshal(data, &strs); err == nil {
		*l = strs
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &strs); err == nil {
			*l = strs
		}
	}
	return nil
}

// decodeIntList reads a raw column value holding a JSON int list.
func decodeIntList(raw string) []int {
	var l FlexIntList
	// UnmarshalJSON never fails; invalid input decodes as empty.
	_ = json.Unmarshal([]byte(raw), &l)
	if l == nil {
		return []int{}
	}
	return l
}

// decodeStringList reads a raw column value holding a JSON string list.
func decodeStringList(raw string) []string {
	var l FlexStringList
	_ = json.Unmarshal([]byte(raw), &l)
	if l == nil {
		return []string{}
	}
	return l
}

// EncodeStringList renders a string list into its storage form. A nil
// list encodes as an empty array so the column always holds a list.
func EncodeStringList(l []string) string {
	if l == nil {
		return "[]"
	}
	return encodeJSON(l)
}

// encodeJSON renders a list for storage. Encoding a slice of ints or
// strings cannot fail.
func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
