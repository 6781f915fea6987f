package ingest

import (
	"bytes"
	"encoding/json"
)

// Field is one metadata entry.
type Field struct {
	Key   string
	Value any
}

// Metadata is an ordered list of metadata entries. It encodes to a JSON object whose
// keys appear in insertion order. A Metadata value is treated as immutable: With
// returns a copy.
type Metadata []Field

// NewMetadata returns metadata holding only the source tag.
func NewMetadata(source string) Metadata {
	return Metadata{{Key: "source", Value: source}}
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// With returns a copy of m with key set to value. An existing key keeps its position.
func (m Metadata) With(key string, value any) Metadata {
	out := make(Metadata, len(m), len(m)+1)
	copy(out, m)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Key: key, Value: value})
}

// Merge applies every field of other on top of m, in order.
func (m Metadata) Merge(other Metadata) Metadata {
	out := m
	for _, f := range other {
		out = out.With(f.Key, f.Value)
	}
	return out
}

// Keys returns the keys in order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

// Map returns the metadata as an unordered map.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, len(m))
	for _, f := range m {
		out[f.Key] = f.Value
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
