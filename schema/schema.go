package schema

import "encoding/json"

// Schema is the interface every agent input/output type implements.
type Schema interface {
	// Attachement returns the schema attachement, if any
	Attachement() *Attachement
}

// Stringify serializes a schema for inclusion in a chat message.
// Plain strings pass through unquoted, everything else becomes JSON.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
