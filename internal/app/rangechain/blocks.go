package rangechain

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type line struct {
	num  int
	text string
}

// splitBlocks splits text into groups of non-blank lines, keeping 1-based
// line numbers for error messages.
func splitBlocks(text string) [][]line {
	var blocks [][]line
	var cur []line
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line{num: i + 1, text: l})
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func parseInts(l line, fields []string, sentinel error) ([]int64, error) {
	vals := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(sentinel, "line %d: %v", l.num, err)
		}
		vals[i] = v
	}
	return vals, nil
}
