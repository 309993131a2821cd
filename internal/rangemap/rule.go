package rangemap

import (
	"errors"
	"fmt"

	"github.com/akmistry/rangechain/internal/interval"
)

var (
	ErrInvalidRule     = errors.New("invalid rule")
	ErrOverlappingRule = errors.New("overlapping rule domains")
)

// Rule shifts every point of Domain by Delta.
type Rule struct {
	Domain interval.Interval
	Delta  int64
}

// NewRule builds the rule mapping [src, src+length-1] onto
// [dest, dest+length-1].
func NewRule(dest, src, length int64) (Rule, error) {
	if length < 1 {
		return Rule{}, fmt.Errorf("%w: length %d < 1", ErrInvalidRule, length)
	}
	domain, err := interval.New(src, src+length-1)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	if _, err := interval.New(dest, dest+length-1); err != nil {
		return Rule{}, fmt.Errorf("%w: destination: %w", ErrInvalidRule, err)
	}
	delta := dest - src
	if (dest^src)&(dest^delta) < 0 {
		return Rule{}, fmt.Errorf("%w: offset %d - %d overflows", ErrInvalidRule, dest, src)
	}
	return Rule{Domain: domain, Delta: delta}, nil
}

// TranslatePoint returns p shifted by Delta, or ok == false if p lies
// outside Domain.
func (r Rule) TranslatePoint(p int64) (v int64, ok bool) {
	if !r.Domain.Has(p) {
		return 0, false
	}
	return p + r.Delta, true
}

// TranslateRange splits iv against Domain. The overlap, if any, is returned
// shifted in matched. The rest of iv is returned unshifted in leftover.
func (r Rule) TranslateRange(iv interval.Interval) (matched, leftover []interval.Interval) {
	overlap, err := r.Domain.Intersection(iv)
	if err != nil {
		return nil, []interval.Interval{iv}
	}
	return []interval.Interval{overlap.Shift(r.Delta)}, iv.Difference(r.Domain)
}

func (r Rule) Compare(o Rule) int {
	return r.Domain.Compare(o.Domain)
}

func (r Rule) String() string {
	return fmt.Sprintf("%v%+d", r.Domain, r.Delta)
}
