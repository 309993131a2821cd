package interval

import (
	"log"
	"slices"
	"strings"
)

// Set is a sorted collection of pairwise non-overlapping intervals. Inserted
// intervals are merged with any entry they overlap. Entries that only touch,
// such as [1, 5] and [6, 10], are kept as separate entries.
//
// The zero value is an empty set. A Set is mutated in place and must not be
// shared without calling Clone.
type Set struct {
	ivs []Interval
}

// NewSet returns a new set built by inserting each of ivs in order.
func NewSet(ivs ...Interval) *Set {
	s := &Set{}
	for _, iv := range ivs {
		s.Insert(iv)
	}
	return s
}

func (s *Set) Insert(iv Interval) {
	// Position after the last entry strictly less than iv, or -1.
	after := -1
	for i, e := range s.ivs {
		if e.Intersects(iv) {
			s.mergeAt(i, iv)
			return
		} else if e.Less(iv) {
			after = i
		} else {
			// e > iv, and so is every entry after it.
			break
		}
	}
	s.ivs = slices.Insert(s.ivs, after+1, iv)
}

// mergeAt unions iv into entry i, then absorbs any following entries that
// overlap the growing result.
func (s *Set) mergeAt(i int, iv Interval) {
	merged := mustUnion(s.ivs[i], iv)
	for i+1 < len(s.ivs) && s.ivs[i+1].Intersects(merged) {
		merged = mustUnion(merged, s.ivs[i+1])
		s.ivs = slices.Delete(s.ivs, i+1, i+2)
	}
	s.ivs[i] = merged
}

// Remove subtracts iv from the first entry it intersects. Only that entry is
// changed, even if iv also overlaps later entries.
func (s *Set) Remove(iv Interval) {
	for i, e := range s.ivs {
		if e.Intersects(iv) {
			s.ivs = slices.Replace(s.ivs, i, i+1, e.Difference(iv)...)
			return
		} else if iv.Less(e) {
			break
		}
	}
}

// Has reports whether x is covered by any entry.
func (s *Set) Has(x int64) bool {
	for _, e := range s.ivs {
		if e.Has(x) {
			return true
		}
	}
	return false
}

// Len returns the number of integers covered by the set.
func (s *Set) Len() int64 {
	return TotalLen(s.ivs)
}

// Count returns the number of entries.
func (s *Set) Count() int {
	return len(s.ivs)
}

// Intervals returns a copy of the entries in ascending order.
func (s *Set) Intervals() []Interval {
	return slices.Clone(s.ivs)
}

func (s *Set) Clone() *Set {
	return &Set{ivs: slices.Clone(s.ivs)}
}

func (s *Set) String() string {
	parts := make([]string, len(s.ivs))
	for i, e := range s.ivs {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func mustUnion(a, b Interval) Interval {
	u, err := a.Union(b)
	if err != nil {
		log.Panicf("interval.Set: %v", err)
	}
	return u
}
