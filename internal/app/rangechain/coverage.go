package rangechain

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/akmistry/rangechain/internal/interval"
)

var (
	ErrInvalidCoverage = errors.New("invalid coverage input")
)

// Coverage is a set of covered ranges plus the ids to check against it.
type Coverage struct {
	Ranges *interval.Set
	IDs    []int64
}

// ParseCoverage parses a block of "a-b" tokens, optionally followed by a
// blank line and a block of ids.
func ParseCoverage(text string) (*Coverage, error) {
	blocks := splitBlocks(text)
	if len(blocks) == 0 || len(blocks) > 2 {
		return nil, errors.Wrapf(ErrInvalidCoverage, "expected 1 or 2 blocks, got %d", len(blocks))
	}

	c := &Coverage{Ranges: interval.NewSet()}
	for _, l := range blocks[0] {
		for _, tok := range strings.Fields(l.text) {
			iv, err := interval.Parse(tok)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidCoverage, "line %d: %v", l.num, err)
			}
			c.Ranges.Insert(iv)
		}
	}
	if len(blocks) == 2 {
		for _, l := range blocks[1] {
			ids, err := parseInts(l, strings.Fields(l.text), ErrInvalidCoverage)
			if err != nil {
				return nil, err
			}
			c.IDs = append(c.IDs, ids...)
		}
	}
	return c, nil
}

// CountCovered returns how many of IDs fall inside Ranges.
func (c *Coverage) CountCovered() int {
	n := 0
	for _, id := range c.IDs {
		if c.Ranges.Has(id) {
			n++
		}
	}
	return n
}

// TotalCovered returns the number of integers inside Ranges.
func (c *Coverage) TotalCovered() int64 {
	return c.Ranges.Len()
}
