package rangemap

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/akmistry/rangechain/internal/interval"
)

func mustRule(t testing.TB, dest, src, length int64) Rule {
	t.Helper()
	r, err := NewRule(dest, src, length)
	if err != nil {
		t.Fatalf("NewRule(%d, %d, %d) unexpected error %v", dest, src, length, err)
	}
	return r
}

func TestNewRule(t *testing.T) {
	tests := []struct {
		dest, src, length int64
		exp               Rule
		expErr            bool
	}{
		{50, 98, 2, Rule{interval.Must(98, 99), -48}, false},
		{52, 50, 48, Rule{interval.Must(50, 97), 2}, false},
		{0, 0, 1, Rule{interval.Must(0, 0), 0}, false},
		{3_000_000_000, 1_000_000_000, 5, Rule{interval.Must(1_000_000_000, 1_000_000_004), 2_000_000_000}, false},
		{1, 2, 0, Rule{}, true},
		{1, 2, -3, Rule{}, true},
		{1, math.MaxInt64 - 1, 5, Rule{}, true},
		{math.MaxInt64 - 1, 1, 5, Rule{}, true},
		{math.MaxInt64 - 10, -20, 5, Rule{}, true},
		{math.MinInt64, 1, 1, Rule{}, true},
		{math.MaxInt64 - 4, math.MaxInt64 - 4, 5, Rule{interval.Must(math.MaxInt64-4, math.MaxInt64), 0}, false},
	}
	for _, tc := range tests {
		r, err := NewRule(tc.dest, tc.src, tc.length)
		if tc.expErr {
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("NewRule(%d, %d, %d) error %v, expected ErrInvalidRule", tc.dest, tc.src, tc.length, err)
			}
			continue
		}
		if err != nil || r != tc.exp {
			t.Errorf("NewRule(%d, %d, %d) (%v, %v) != (%v, nil)", tc.dest, tc.src, tc.length, r, err, tc.exp)
		}
	}
}

func TestRuleTranslatePoint(t *testing.T) {
	r := mustRule(t, 50, 98, 2)
	tests := []struct {
		p     int64
		exp   int64
		expOk bool
	}{
		{97, 0, false},
		{98, 50, true},
		{99, 51, true},
		{100, 0, false},
	}
	for _, tc := range tests {
		v, ok := r.TranslatePoint(tc.p)
		if v != tc.exp || ok != tc.expOk {
			t.Errorf("TranslatePoint(%d) (%d, %v) != (%d, %v)", tc.p, v, ok, tc.exp, tc.expOk)
		}
	}
}

func TestRuleTranslateRange(t *testing.T) {
	r := mustRule(t, 50, 98, 2)
	tests := []struct {
		iv          interval.Interval
		expMatched  []interval.Interval
		expLeftover []interval.Interval
	}{
		{interval.Must(97, 100), []interval.Interval{{A: 50, B: 51}}, []interval.Interval{{A: 97, B: 97}, {A: 100, B: 100}}},
		{interval.Must(98, 99), []interval.Interval{{A: 50, B: 51}}, nil},
		{interval.Must(99, 120), []interval.Interval{{A: 51, B: 51}}, []interval.Interval{{A: 100, B: 120}}},
		{interval.Must(0, 97), nil, []interval.Interval{{A: 0, B: 97}}},
	}
	for _, tc := range tests {
		matched, leftover := r.TranslateRange(tc.iv)
		if diff := cmp.Diff(tc.expMatched, matched); diff != "" {
			t.Errorf("TranslateRange(%v) matched mismatch: %s", tc.iv, diff)
		}
		if diff := cmp.Diff(tc.expLeftover, leftover); diff != "" {
			t.Errorf("TranslateRange(%v) leftover mismatch: %s", tc.iv, diff)
		}
	}
}

type pointTranslator interface {
	TranslatePoint(p int64) int64
}

func seedToSoil(t testing.TB) *RangeMap {
	return New(mustRule(t, 50, 98, 2), mustRule(t, 52, 50, 48))
}

func testTranslatePoint(t *testing.T, m pointTranslator) {
	tests := []struct {
		p, exp int64
	}{
		{0, 0},
		{49, 49},
		{50, 52},
		{79, 81},
		{97, 99},
		{98, 50},
		{99, 51},
		{100, 100},
	}
	for _, tc := range tests {
		if v := m.TranslatePoint(tc.p); v != tc.exp {
			t.Errorf("TranslatePoint(%d) %d != %d", tc.p, v, tc.exp)
		}
	}
}

func TestRangeMap_TranslatePoint(t *testing.T) {
	testTranslatePoint(t, seedToSoil(t))
}

func TestPointIndex_TranslatePoint(t *testing.T) {
	idx, err := NewPointIndex(seedToSoil(t))
	if err != nil {
		t.Fatalf("NewPointIndex unexpected error %v", err)
	}
	testTranslatePoint(t, idx)
}

func TestRangeMapSortsRules(t *testing.T) {
	m := seedToSoil(t)
	exp := []Rule{mustRule(t, 52, 50, 48), mustRule(t, 50, 98, 2)}
	if diff := cmp.Diff(exp, m.Rules()); diff != "" {
		t.Errorf("Rules() mismatch: %s", diff)
	}
}

func TestRangeMap_TranslateRanges(t *testing.T) {
	m := seedToSoil(t)
	out := m.TranslateRanges([]interval.Interval{interval.Must(40, 60)})
	slices.SortFunc(out, interval.Interval.Compare)
	exp := []interval.Interval{{A: 40, B: 49}, {A: 52, B: 62}}
	if diff := cmp.Diff(exp, out); diff != "" {
		t.Errorf("TranslateRanges mismatch: %s", diff)
	}
	if interval.TotalLen(out) != 21 {
		t.Errorf("TotalLen %d != 21", interval.TotalLen(out))
	}

	if out := m.TranslateRanges(nil); len(out) != 0 {
		t.Errorf("TranslateRanges(nil) = %v", out)
	}
}

func TestRangeMap_TranslateRangesSpanning(t *testing.T) {
	m := seedToSoil(t)
	in := []interval.Interval{interval.Must(0, 200), interval.Must(98, 98)}
	out := m.TranslateRanges(in)
	slices.SortFunc(out, interval.Interval.Compare)
	exp := []interval.Interval{
		{A: 0, B: 49},
		{A: 50, B: 50},
		{A: 50, B: 51},
		{A: 52, B: 99},
		{A: 100, B: 200},
	}
	if diff := cmp.Diff(exp, out); diff != "" {
		t.Errorf("TranslateRanges mismatch: %s", diff)
	}
}

// randomRangeMap builds a map with disjoint rule domains inside [0, limit).
func randomRangeMap(r *rand.Rand, limit int64) *RangeMap {
	var rules []Rule
	for start := r.Int63n(10); start < limit; {
		length := r.Int63n(20) + 1
		rules = append(rules, Rule{
			Domain: interval.Must(start, start+length-1),
			Delta:  r.Int63n(2*limit) - limit,
		})
		start += length + r.Int63n(10)
	}
	r.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })
	return New(rules...)
}

func TestTranslateRangesProperties(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for i := 0; i < 200; i++ {
		m := randomRangeMap(r, 300)
		var in []interval.Interval
		for j := r.Intn(5); j >= 0; j-- {
			a := r.Int63n(350)
			in = append(in, interval.Must(a, a+r.Int63n(60)))
		}

		out := m.TranslateRanges(in)
		if interval.TotalLen(out) != interval.TotalLen(in) {
			t.Fatalf("TotalLen %d != input %d", interval.TotalLen(out), interval.TotalLen(in))
		}
		for _, iv := range in {
			for p := iv.A; p <= iv.B; p++ {
				v := m.TranslatePoint(p)
				if !slices.ContainsFunc(out, func(o interval.Interval) bool { return o.Has(v) }) {
					t.Fatalf("image %d of %d missing from %v", v, p, out)
				}
			}
		}
	}
}

func TestTranslatePointInsideRule(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		m := randomRangeMap(r, 300)
		rule := m.Rules()[r.Intn(len(m.rules))]
		a := rule.Domain.A + r.Int63n(rule.Domain.Len())
		iv := interval.Must(a, a+r.Int63n(rule.Domain.B-a+1))

		out := m.TranslateRanges([]interval.Interval{iv})
		if len(out) != 1 {
			t.Fatalf("TranslateRanges(%v) = %v, expected one interval", iv, out)
		}
		for p := iv.A; p <= iv.B; p++ {
			if v := m.TranslatePoint(p); v != out[0].A+(p-iv.A) {
				t.Fatalf("TranslatePoint(%d) %d != %d", p, v, out[0].A+(p-iv.A))
			}
		}
	}
}

func TestPointIndexMatchesRangeMap(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		m := randomRangeMap(r, 300)
		idx, err := NewPointIndex(m)
		if err != nil {
			t.Fatalf("NewPointIndex unexpected error %v", err)
		}
		for p := int64(-20); p < 320; p++ {
			if a, b := m.TranslatePoint(p), idx.TranslatePoint(p); a != b {
				t.Fatalf("TranslatePoint(%d): index %d != map %d", p, b, a)
			}
		}
	}
}

func TestPointIndexNegative(t *testing.T) {
	m := New(mustRule(t, 0, -10, 5), mustRule(t, -100, 5, 10))
	idx, err := NewPointIndex(m)
	if err != nil {
		t.Fatalf("NewPointIndex unexpected error %v", err)
	}
	tests := []struct {
		p, exp int64
	}{
		{-11, -11},
		{-10, 0},
		{-6, 4},
		{-5, -5},
		{4, 4},
		{5, -100},
		{14, -91},
		{15, 15},
	}
	for _, tc := range tests {
		if v := idx.TranslatePoint(tc.p); v != tc.exp {
			t.Errorf("TranslatePoint(%d) %d != %d", tc.p, v, tc.exp)
		}
	}
}

func TestPointIndexOverlapping(t *testing.T) {
	m := New(mustRule(t, 0, 10, 5), mustRule(t, 100, 12, 5))
	if _, err := NewPointIndex(m); !errors.Is(err, ErrOverlappingRule) {
		t.Errorf("NewPointIndex error %v, expected ErrOverlappingRule", err)
	}
}

func BenchmarkRangeMap_TranslatePoint(b *testing.B) {
	m := randomRangeMap(rand.New(rand.NewSource(0)), 1000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.TranslatePoint(int64(i % 1000))
	}
}

func BenchmarkPointIndex_TranslatePoint(b *testing.B) {
	idx, err := NewPointIndex(randomRangeMap(rand.New(rand.NewSource(0)), 1000))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		idx.TranslatePoint(int64(i % 1000))
	}
}
