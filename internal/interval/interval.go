// Package interval implements closed integer intervals and a coalescing set of them.
package interval

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

var (
	ErrInvalidInterval = errors.New("invalid interval")
	ErrNoIntersection  = errors.New("intervals do not intersect")
)

// Interval is the inclusive range of integers [A, B]. A <= B always holds for
// intervals built with New or Must.
type Interval struct {
	A, B int64
}

func New(a, b int64) (Interval, error) {
	if a > b {
		return Interval{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidInterval, a, b)
	}
	return Interval{A: a, B: b}, nil
}

// Must is like New, but panics if a > b.
func Must(a, b int64) Interval {
	iv, err := New(a, b)
	if err != nil {
		log.Panicf("interval.Must(%d, %d): %v", a, b, err)
	}
	return iv
}

// Parse parses a token of the form "a-b".
func Parse(token string) (Interval, error) {
	// Skip the first byte so a leading minus sign is not taken as the separator.
	sep := -1
	if len(token) > 1 {
		sep = strings.IndexByte(token[1:], '-')
	}
	if sep < 0 {
		return Interval{}, fmt.Errorf("%w: missing separator in %q", ErrInvalidInterval, token)
	}
	sep++
	a, err := strconv.ParseInt(token[:sep], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %w", ErrInvalidInterval, token, err)
	}
	b, err := strconv.ParseInt(token[sep+1:], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %w", ErrInvalidInterval, token, err)
	}
	return New(a, b)
}

func (i Interval) Len() int64 {
	return i.B - i.A + 1
}

// Has reports whether x lies inside the interval.
func (i Interval) Has(x int64) bool {
	return i.A <= x && x <= i.B
}

func (i Interval) Intersects(o Interval) bool {
	return max(i.A, o.A) <= min(i.B, o.B)
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return o.A >= i.A && o.B <= i.B
}

func (i Interval) Union(o Interval) (Interval, error) {
	if !i.Intersects(o) {
		return Interval{}, fmt.Errorf("union of %v and %v: %w", i, o, ErrNoIntersection)
	}
	return Interval{A: min(i.A, o.A), B: max(i.B, o.B)}, nil
}

func (i Interval) Intersection(o Interval) (Interval, error) {
	if !i.Intersects(o) {
		return Interval{}, fmt.Errorf("intersection of %v and %v: %w", i, o, ErrNoIntersection)
	}
	return Interval{A: max(i.A, o.A), B: min(i.B, o.B)}, nil
}

// Difference returns the parts of i not covered by o: the left remainder
// followed by the right remainder, each only if non-empty. If i and o are
// disjoint, the result is just i.
func (i Interval) Difference(o Interval) []Interval {
	if !i.Intersects(o) {
		return []Interval{i}
	}
	var pieces []Interval
	if i.A < o.A {
		pieces = append(pieces, Interval{A: i.A, B: o.A - 1})
	}
	if i.B > o.B {
		pieces = append(pieces, Interval{A: o.B + 1, B: i.B})
	}
	return pieces
}

func (i Interval) Shift(delta int64) Interval {
	return Interval{A: i.A + delta, B: i.B + delta}
}

// Compare orders intervals lexicographically on (A, B).
func (i Interval) Compare(o Interval) int {
	switch {
	case i.A < o.A:
		return -1
	case i.A > o.A:
		return 1
	case i.B < o.B:
		return -1
	case i.B > o.B:
		return 1
	}
	return 0
}

func (i Interval) Less(o Interval) bool {
	return i.Compare(o) < 0
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d]", i.A, i.B)
}

// TotalLen sums the lengths of ivs.
func TotalLen(ivs []Interval) int64 {
	var n int64
	for _, iv := range ivs {
		n += iv.Len()
	}
	return n
}
