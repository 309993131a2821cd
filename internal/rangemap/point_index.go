package rangemap

import (
	"fmt"

	"github.com/akmistry/go-util/radix-tree"
)

type indexEntry struct {
	Rule
}

func (e *indexEntry) Key() uint64 {
	return indexKey(e.Domain.A)
}

// indexKey maps signed points onto the unsigned key space, preserving order.
func indexKey(p int64) uint64 {
	return uint64(p) ^ (1 << 63)
}

// PointIndex answers point translations of a RangeMap without scanning every
// rule. It requires the rule domains to be disjoint.
type PointIndex struct {
	tree radix.Tree
}

func NewPointIndex(m *RangeMap) (*PointIndex, error) {
	idx := &PointIndex{}
	for i, r := range m.rules {
		if i > 0 && m.rules[i-1].Domain.Intersects(r.Domain) {
			return nil, fmt.Errorf("%w: %v and %v", ErrOverlappingRule, m.rules[i-1], r)
		}
		idx.tree.ReplaceOrInsert(&indexEntry{Rule: r})
	}
	return idx, nil
}

// Rule returns the rule whose domain contains p.
func (idx *PointIndex) Rule(p int64) (r Rule, ok bool) {
	idx.tree.DescendLessOrEqualI(indexKey(p), func(i radix.Item) bool {
		ie := i.(*indexEntry)
		if ie.Domain.Has(p) {
			r = ie.Rule
			ok = true
		}
		return false
	})
	return
}

func (idx *PointIndex) TranslatePoint(p int64) int64 {
	if r, ok := idx.Rule(p); ok {
		return p + r.Delta
	}
	return p
}
