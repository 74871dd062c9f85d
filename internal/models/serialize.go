package models

import "time"

// Serializer is implemented by every entity that exposes a public projection.
type Serializer interface {
	Serialize() map[string]any
}

// FormatTimestamp renders t as ISO-8601 text in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// SerializeAll projects every element of items.
func SerializeAll[T any, PT interface {
	*T
	Serializer
}](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, PT(&items[i]).Serialize())
	}
	return out
}
