// Package chain drives points and intervals through a sequence of named
// range maps.
package chain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/akmistry/rangechain/internal/interval"
	"github.com/akmistry/rangechain/internal/rangemap"
	"github.com/akmistry/rangechain/internal/util"
)

var (
	ErrUnknownStage   = errors.New("unknown stage")
	ErrDuplicateStage = errors.New("duplicate stage")
	ErrInvalidStage   = errors.New("invalid stage")
	ErrCycle          = errors.New("cyclic or unterminated chain")
)

// Stage maps values labelled From into values labelled To.
type Stage struct {
	From, To string
	Map      *rangemap.RangeMap
}

type Options struct {
	// Build a rangemap.PointIndex per stage and use it for RunPoint.
	PointIndex bool

	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Chain is an immutable set of stages, at most one per source label. A label
// with no stage of its own is terminal.
type Chain struct {
	stages  []Stage
	indexes []*rangemap.PointIndex
	from    map[string]int
	to      map[string]bool
	log     *slog.Logger
}

func New(stages ...Stage) (*Chain, error) {
	return NewWithOptions(Options{}, stages...)
}

func NewWithOptions(opts Options, stages ...Stage) (*Chain, error) {
	c := &Chain{
		stages: make([]Stage, 0, len(stages)),
		from:   make(map[string]int, len(stages)),
		to:     make(map[string]bool, len(stages)),
		log:    util.OrDefault(opts.Logger, slog.Default()),
	}
	for _, s := range stages {
		if s.Map == nil {
			return nil, fmt.Errorf("%w: %s-to-%s has no map", ErrInvalidStage, s.From, s.To)
		}
		if _, ok := c.from[s.From]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStage, s.From)
		}
		c.from[s.From] = len(c.stages)
		c.to[s.To] = true
		c.stages = append(c.stages, s)

		if opts.PointIndex {
			idx, err := rangemap.NewPointIndex(s.Map)
			if err != nil {
				return nil, fmt.Errorf("%w: %s-to-%s: %w", ErrInvalidStage, s.From, s.To, err)
			}
			c.indexes = append(c.indexes, idx)
		}
	}
	return c, nil
}

// Stages returns the stages in the order they were given.
func (c *Chain) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

// Next returns the label that values labelled label are mapped into.
func (c *Chain) Next(label string) (string, bool) {
	i, ok := c.from[label]
	if !ok {
		return "", false
	}
	return c.stages[i].To, true
}

// Terminal reports whether label is the destination of some stage and the
// source of none.
func (c *Chain) Terminal(label string) bool {
	_, ok := c.from[label]
	return !ok && c.to[label]
}

// walk calls f for each stage reachable from start, in order, and returns the
// terminal label.
func (c *Chain) walk(start string, f func(i int)) (string, error) {
	if _, ok := c.from[start]; !ok && !c.to[start] {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, start)
	}

	var visited bitset.BitSet
	label := start
	for {
		i, ok := c.from[label]
		if !ok {
			return label, nil
		}
		if visited.Test(uint(i)) {
			return "", fmt.Errorf("%w: %q revisited starting from %q", ErrCycle, label, start)
		}
		visited.Set(uint(i))

		s := &c.stages[i]
		c.log.Debug("Running stage", "from", s.From, "to", s.To)
		f(i)
		label = s.To
	}
}

// RunPoint maps v from the start label through to the terminal label.
func (c *Chain) RunPoint(start string, v int64) (int64, error) {
	end, err := c.walk(start, func(i int) {
		if c.indexes != nil {
			v = c.indexes[i].TranslatePoint(v)
		} else {
			v = c.stages[i].Map.TranslatePoint(v)
		}
	})
	if err != nil {
		return 0, err
	}
	c.log.Debug("Ran point", "start", start, "end", end, "value", v)
	return v, nil
}

// RunRanges maps every point of ivs from the start label through to the
// terminal label. The result is in no particular order.
func (c *Chain) RunRanges(start string, ivs []interval.Interval) ([]interval.Interval, error) {
	end, err := c.walk(start, func(i int) {
		ivs = c.stages[i].Map.TranslateRanges(ivs)
	})
	if err != nil {
		return nil, err
	}
	c.log.Debug("Ran ranges", "start", start, "end", end, "intervals", len(ivs))
	return ivs, nil
}
