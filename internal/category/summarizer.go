// Package category finds the main categories of a categorical column: the
// smallest set of most frequent values whose cumulative relative frequency
// stays within a threshold.
package category

import (
	"log"
	"math"
	"os"
	"sort"

	"github.com/KaramelBytes/catbin/internal/column"
	"github.com/KaramelBytes/catbin/internal/errs"
)

// TieBreak orders categories with equal counts.
type TieBreak int

const (
	// TieBreakFirstSeen keeps the order in which values first appear.
	TieBreakFirstSeen TieBreak = iota
	// TieBreakLexical orders equal counts by value.
	TieBreakLexical
)

// ParseTieBreak accepts "first" (or "") and "lexical".
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "first", "first-seen":
		return TieBreakFirstSeen, nil
	case "lexical", "alpha":
		return TieBreakLexical, nil
	default:
		return 0, errs.Value("category.ParseTieBreak", "unknown tie-break %q (use first or lexical)", s)
	}
}

func (t TieBreak) String() string {
	if t == TieBreakLexical {
		return "lexical"
	}
	return "first"
}

// MaxDecimals is the largest rounding precision a float64 proportion can carry.
const MaxDecimals = 15

// Options controls frequency computation.
type Options struct {
	// Decimals is the rounding applied to proportions (default 4, at most
	// MaxDecimals).
	Decimals int
	TieBreak TieBreak
	// Logger receives informational messages; nil logs to stderr.
	Logger *log.Logger
}

// DefaultOptions returns the options matching pandas-style 4-decimal output.
func DefaultOptions() Options {
	return Options{Decimals: 4}
}

// Frequency is one row of the frequency table.
type Frequency struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Proportion float64 `json:"proportion"`
	Cumulative float64 `json:"cumulative"`
}

// Summarizer holds the main categories of one column. It is computed once by
// New and never modified afterwards.
type Summarizer struct {
	col       column.Column
	threshold float64
	opt       Options
	rows      int
	freqs     []Frequency
	limit     int
	hasLimit  bool
	cats      []string
	cumFreq   float64
}

// New validates the input and computes every derived field.
func New(col column.Column, threshold float64, opt Options) (*Summarizer, error) {
	if column.IsNil(col) {
		return nil, errs.Type("category.New", "column is nil")
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, errs.Value("category.New", "the threshold must be a proportion between 0 and 1, got %v", threshold)
	}
	if t, ok := col.(*column.Table); ok && t.Width() != 1 {
		return nil, errs.Value("category.New", "table must contain only one column, got %d", t.Width())
	}
	if opt.Decimals > MaxDecimals {
		return nil, errs.Value("category.New", "decimals must be at most %d, got %d", MaxDecimals, opt.Decimals)
	}
	if opt.Decimals <= 0 {
		opt.Decimals = 4
	}
	if opt.Logger == nil {
		opt.Logger = log.New(os.Stderr, "", 0)
	}

	s := &Summarizer{col: col, threshold: threshold, opt: opt}
	values := col.Values()
	s.rows = len(values)
	s.freqs = frequencies(values, opt)

	if threshold == 0 {
		return s, nil
	}
	s.hasLimit = true
	for _, f := range s.freqs {
		if f.Cumulative > threshold+1e-9 {
			break
		}
		s.limit++
	}
	if s.limit == 0 {
		return s, nil
	}
	s.cats = make([]string, s.limit)
	for i := 0; i < s.limit; i++ {
		s.cats[i] = s.freqs[i].Value
	}
	s.cumFreq = s.freqs[s.limit-1].Cumulative
	return s, nil
}

// Summarize adapts v with column.From and calls New.
func Summarize(v any, threshold float64, opt Options) (*Summarizer, error) {
	col, err := column.From(v)
	if err != nil {
		return nil, err
	}
	return New(col, threshold, opt)
}

// frequencies counts values, sorts by descending count with the configured
// tie-break and fills rounded proportions. Cumulative values come from exact
// integer counts so the last entry is exactly 1.
func frequencies(values []string, opt Options) []Frequency {
	if len(values) == 0 {
		return nil
	}
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]Frequency, len(order))
	for i, v := range order {
		out[i] = Frequency{Value: v, Count: counts[v]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if opt.TieBreak == TieBreakLexical {
			return out[i].Value < out[j].Value
		}
		return false
	})
	n := float64(len(values))
	running := 0
	for i := range out {
		running += out[i].Count
		out[i].Proportion = round(float64(out[i].Count)/n, opt.Decimals)
		out[i].Cumulative = round(float64(running)/n, opt.Decimals)
	}
	return out
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Column returns the input column.
func (s *Summarizer) Column() column.Column { return s.col }

// Threshold returns the threshold fixed at construction.
func (s *Summarizer) Threshold() float64 { return s.threshold }

// Rows returns the number of values in the column.
func (s *Summarizer) Rows() int { return s.rows }

// FrequencyTable returns a copy of the frequency table in descending order.
func (s *Summarizer) FrequencyTable() []Frequency {
	return append([]Frequency(nil), s.freqs...)
}

// Limit returns the number of main categories. ok is false when the
// threshold is 0 and no limit applies.
func (s *Summarizer) Limit() (n int, ok bool) { return s.limit, s.hasLimit }

// Categories returns the main categories in descending frequency, or nil
// when none qualify.
func (s *Summarizer) Categories() []string {
	if s.cats == nil {
		return nil
	}
	return append([]string(nil), s.cats...)
}

// CumulativeFrequency returns the combined proportion of the main categories.
func (s *Summarizer) CumulativeFrequency() float64 { return s.cumFreq }

// Recode returns the column values with every category outside the main set
// replaced by other.
func (s *Summarizer) Recode(other string) []string {
	keep := make(map[string]struct{}, len(s.cats))
	for _, c := range s.cats {
		keep[c] = struct{}{}
	}
	values := s.col.Values()
	out := make([]string, len(values))
	for i, v := range values {
		if _, ok := keep[v]; ok {
			out[i] = v
		} else {
			out[i] = other
		}
	}
	return out
}
