// Package rangemap implements piecewise translation of integers and integer
// ranges by a set of shifted domains.
package rangemap

import (
	"slices"

	"github.com/akmistry/rangechain/internal/interval"
	"github.com/akmistry/rangechain/internal/util"
)

// RangeMap is a piecewise function over the integers: points inside a rule's
// domain are shifted by that rule, all other points map to themselves. Rule
// domains are expected to be disjoint; this is not checked.
type RangeMap struct {
	rules []Rule
}

func New(rules ...Rule) *RangeMap {
	m := &RangeMap{rules: slices.Clone(rules)}
	slices.SortFunc(m.rules, Rule.Compare)
	return m
}

// Rules returns the rules sorted by domain.
func (m *RangeMap) Rules() []Rule {
	return slices.Clone(m.rules)
}

func (m *RangeMap) TranslatePoint(p int64) int64 {
	for _, r := range m.rules {
		if v, ok := r.TranslatePoint(p); ok {
			return v
		}
	}
	return p
}

// TranslateRanges maps every point of ivs and returns the image as a list of
// intervals. The output has the same total length as the input, but is in no
// particular order.
func (m *RangeMap) TranslateRanges(ivs []interval.Interval) []interval.Interval {
	todo := slices.Clone(ivs)
	slices.SortFunc(todo, interval.Interval.Compare)

	var out []interval.Interval
	for len(todo) > 0 {
		var iv interval.Interval
		iv, todo = util.SlicePop(todo)

		found := false
		for _, r := range m.rules {
			matched, leftover := r.TranslateRange(iv)
			if len(matched) > 0 {
				out = append(out, matched...)
				// Leftovers may still fall inside other rules.
				todo = append(todo, leftover...)
				found = true
				break
			}
		}
		if !found {
			out = append(out, iv)
		}
	}
	return out
}
