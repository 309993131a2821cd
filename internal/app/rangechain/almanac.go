package rangechain

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/akmistry/rangechain/internal/chain"
	"github.com/akmistry/rangechain/internal/interval"
	"github.com/akmistry/rangechain/internal/rangemap"
	"github.com/akmistry/rangechain/internal/util"
)

var (
	ErrInvalidAlmanac = errors.New("invalid almanac")
)

type ParseOptions struct {
	// Separates source and destination labels in a map header. Defaults to "-to-".
	LinkWord string
	// Ends a map header. Defaults to " map:".
	MapSuffix string

	Chain chain.Options
}

// Almanac is a parsed seed line plus the chain built from its map blocks.
type Almanac struct {
	SeedLabel string
	Seeds     []int64
	Chain     *chain.Chain
}

func ParseAlmanac(text string) (*Almanac, error) {
	return ParseAlmanacWithOptions(text, ParseOptions{})
}

// ParseAlmanacWithOptions parses
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	...
func ParseAlmanacWithOptions(text string, opts ParseOptions) (*Almanac, error) {
	opts.LinkWord = util.OrDefault(opts.LinkWord, "-to-")
	opts.MapSuffix = util.OrDefault(opts.MapSuffix, " map:")

	blocks := splitBlocks(text)
	if len(blocks) < 2 {
		return nil, errors.Wrap(ErrInvalidAlmanac, "expected a seed line and at least one map")
	}

	seedBlock := blocks[0]
	if len(seedBlock) != 1 {
		return nil, errors.Wrapf(ErrInvalidAlmanac, "line %d: seed block has %d lines", seedBlock[0].num, len(seedBlock))
	}
	label, rest, ok := strings.Cut(seedBlock[0].text, ":")
	if !ok || label == "" {
		return nil, errors.Wrapf(ErrInvalidAlmanac, "line %d: expected <label>: <numbers>", seedBlock[0].num)
	}
	seeds, err := parseInts(seedBlock[0], strings.Fields(rest), ErrInvalidAlmanac)
	if err != nil {
		return nil, err
	}

	var stages []chain.Stage
	for _, b := range blocks[1:] {
		s, err := parseStage(b, opts)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	c, err := chain.NewWithOptions(opts.Chain, stages...)
	if err != nil {
		return nil, errors.Wrap(err, "building chain")
	}

	a := &Almanac{Seeds: seeds, Chain: c}
	// "seeds" label their values as "seed".
	for _, l := range []string{label, strings.TrimSuffix(label, "s")} {
		if _, ok := c.Next(l); ok {
			a.SeedLabel = l
			break
		}
	}
	if a.SeedLabel == "" {
		return nil, errors.Wrapf(ErrInvalidAlmanac, "no map starts from %q", label)
	}
	return a, nil
}

func parseStage(b []line, opts ParseOptions) (chain.Stage, error) {
	header := b[0]
	labels, ok := strings.CutSuffix(header.text, opts.MapSuffix)
	if !ok {
		return chain.Stage{}, errors.Wrapf(ErrInvalidAlmanac, "line %d: expected map header, got %q", header.num, header.text)
	}
	from, to, ok := strings.Cut(labels, opts.LinkWord)
	if !ok || from == "" || to == "" {
		return chain.Stage{}, errors.Wrapf(ErrInvalidAlmanac, "line %d: expected <source>%s<destination>", header.num, opts.LinkWord)
	}

	rules := make([]rangemap.Rule, 0, len(b)-1)
	for _, l := range b[1:] {
		fields := strings.Fields(l.text)
		if len(fields) != 3 {
			return chain.Stage{}, errors.Wrapf(ErrInvalidAlmanac, "line %d: expected 3 numbers, got %d", l.num, len(fields))
		}
		vals, err := parseInts(l, fields, ErrInvalidAlmanac)
		if err != nil {
			return chain.Stage{}, err
		}
		r, err := rangemap.NewRule(vals[0], vals[1], vals[2])
		if err != nil {
			return chain.Stage{}, errors.Wrapf(err, "line %d", l.num)
		}
		rules = append(rules, r)
	}
	return chain.Stage{From: from, To: to, Map: rangemap.New(rules...)}, nil
}

// SeedRanges reads Seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]interval.Interval, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidAlmanac, "odd number of seeds (%d)", len(a.Seeds))
	}
	ivs := make([]interval.Interval, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		start, length := a.Seeds[i], a.Seeds[i+1]
		if length < 1 {
			return nil, errors.Wrapf(ErrInvalidAlmanac, "seed range at %d has length %d", start, length)
		}
		iv, err := interval.New(start, start+length-1)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidAlmanac, "seed range at %d: %v", start, err)
		}
		ivs = append(ivs, iv)
	}
	return ivs, nil
}

// LowestPoint returns the lowest terminal value over all seeds.
func (a *Almanac) LowestPoint() (int64, error) {
	if len(a.Seeds) == 0 {
		return 0, errors.Wrap(ErrInvalidAlmanac, "no seeds")
	}
	var lowest int64
	for i, s := range a.Seeds {
		v, err := a.Chain.RunPoint(a.SeedLabel, s)
		if err != nil {
			return 0, err
		}
		if i == 0 || v < lowest {
			lowest = v
		}
	}
	return lowest, nil
}

// LowestRange returns the lowest terminal value over all seed ranges.
func (a *Almanac) LowestRange() (int64, error) {
	ivs, err := a.SeedRanges()
	if err != nil {
		return 0, err
	}
	if len(ivs) == 0 {
		return 0, errors.Wrap(ErrInvalidAlmanac, "no seeds")
	}
	out, err := a.Chain.RunRanges(a.SeedLabel, ivs)
	if err != nil {
		return 0, err
	}
	return slices.MinFunc(out, interval.Interval.Compare).A, nil
}
