package selection

import "slices"

// Set is a sparse collection of space indices kept sorted and unique.
// The zero value is an empty set ready for use.
type Set []uint64

// Has reports whether v is in the set.
func (s Set) Has(v uint64) bool {
	_, found := slices.BinarySearch(s, v)
	return found
}

// Len returns the number of indices in the set.
func (s Set) Len() int { return len(s) }

// Add inserts v, keeping the set sorted. Adding an existing index is a
// no-op.
func (s *Set) Add(v uint64) {
	i, found := slices.BinarySearch(*s, v)
	if found {
		return
	}
	*s = slices.Insert(*s, i, v)
}

// Remove deletes v if present.
func (s *Set) Remove(v uint64) {
	i, found := slices.BinarySearch(*s, v)
	if !found {
		return
	}
	*s = slices.Delete(*s, i, i+1)
}

// Toggle flips the membership of v and reports whether v is in the set
// afterwards.
func (s *Set) Toggle(v uint64) bool {
	i, found := slices.BinarySearch(*s, v)
	if found {
		*s = slices.Delete(*s, i, i+1)
		return false
	}
	*s = slices.Insert(*s, i, v)
	return true
}

// below counts the set members strictly less than limit.
func (s Set) below(limit uint64) int {
	i, _ := slices.BinarySearch(s, limit)
	return i
}
