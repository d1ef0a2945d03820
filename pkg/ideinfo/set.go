package ideinfo

import "iter"

// Set is a set of RustIdeInfo values keyed by Hash and resolved by Equal.
// The zero value is an empty set ready to use. It is not safe for
// concurrent use.
type Set struct {
	buckets map[uint64][]RustIdeInfo
	n       int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{buckets: make(map[uint64][]RustIdeInfo)}
}

// Add inserts info and reports whether it was not already present.
func (s *Set) Add(info RustIdeInfo) bool {
	h := info.Hash()
	for _, existing := range s.buckets[h] {
		if existing.Equal(info) {
			return false
		}
	}
	if s.buckets == nil {
		s.buckets = make(map[uint64][]RustIdeInfo)
	}
	s.buckets[h] = append(s.buckets[h], info)
	s.n++
	return true
}

// Contains reports whether an info equal to info is in the set.
func (s *Set) Contains(info RustIdeInfo) bool {
	for _, existing := range s.buckets[info.Hash()] {
		if existing.Equal(info) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct infos.
func (s *Set) Len() int {
	return s.n
}

// All iterates over the infos in no particular order.
func (s *Set) All() iter.Seq[RustIdeInfo] {
	return func(yield func(RustIdeInfo) bool) {
		for _, bucket := range s.buckets {
			for _, info := range bucket {
				if !yield(info) {
					return
				}
			}
		}
	}
}
