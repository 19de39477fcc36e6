package viewmodel

import "strings"

// Filter returns the records whose searchable fields contain term,
// ignoring case. An empty term returns every record in order.
func Filter[T any](records []T, related *Related, term string, fields func(T, *Related) []string) []T {
	out := make([]T, 0, len(records))
	if term == "" || fields == nil {
		return append(out, records...)
	}

	needle := strings.ToLower(term)
	for _, rec := range records {
		for _, field := range fields(rec, related) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
