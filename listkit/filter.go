package listkit

import "strings"

// Accessor derives one searchable string from a record. ok=false excludes
// the field from matching (an unset optional field), not the record.
type Accessor[T any] func(T) (string, bool)

// Match reports whether any of the given field values contains the query,
// case-insensitively. An empty or whitespace-only query matches everything.
func Match(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the records matching query across the given accessors,
// preserving the input order. An empty query returns the input unchanged.
func Filter[T any](records []T, query string, accessors ...Accessor[T]) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, acc := range accessors {
			s, ok := acc(r)
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(s), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Field adapts a plain string accessor; empty strings still participate in
// matching, use an Accessor directly for optional fields.
func Field[T any](get func(T) string) Accessor[T] {
	return func(r T) (string, bool) {
		return get(r), true
	}
}
