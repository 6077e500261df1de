// Package refset manipulates the uuid[] reference columns that keep the
// denormalized links between classes, students, teachers and courses.
package refset

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Contains reports whether id is present in the set.
func Contains(set pq.StringArray, id uuid.UUID) bool {
	s := id.String()
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Add appends id when absent and returns the (possibly new) set.
func Add(set pq.StringArray, id uuid.UUID) pq.StringArray {
	if Contains(set, id) {
		return set
	}
	return append(set, id.String())
}

// Remove drops id from the set, keeping order.
func Remove(set pq.StringArray, id uuid.UUID) pq.StringArray {
	s := id.String()
	out := set[:0]
	for _, v := range set {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// ToUUIDs parses the set, skipping malformed entries.
func ToUUIDs(set pq.StringArray) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for _, v := range set {
		if id, err := uuid.Parse(v); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// FromUUIDs builds a set from parsed ids.
func FromUUIDs(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
