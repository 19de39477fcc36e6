// Package lookup resolves foreign-key references against loaded collections.
package lookup

import "github.com/libreria-gestion/backoffice/internal/domain/models"

// Placeholder is displayed in place of a reference that cannot be resolved.
const Placeholder = "N/A"

// Resolve returns the record whose id equals id. Collections are small, so
// a linear scan is used. A missing or empty id reports false.
func Resolve[T models.Record](collection []T, id models.ID) (T, bool) {
	var zero T
	if id.IsZero() {
		return zero, false
	}
	for _, rec := range collection {
		if rec.Identity() == id {
			return rec, true
		}
	}
	return zero, false
}

// Label resolves id and renders it with label, falling back to Placeholder.
func Label[T models.Record](collection []T, id models.ID, label func(T) string) string {
	rec, ok := Resolve(collection, id)
	if !ok {
		return Placeholder
	}
	if text := label(rec); text != "" {
		return text
	}
	return Placeholder
}

// Text resolves id and renders it with label, falling back to "". Used for
// search fields where the placeholder must not match.
func Text[T models.Record](collection []T, id models.ID, label func(T) string) string {
	rec, ok := Resolve(collection, id)
	if !ok {
		return ""
	}
	return label(rec)
}
