// Package bins partitions a numeric range into fixed-width, labeled bins.
package bins

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/catbin/internal/errs"
	"github.com/montanaflynn/stats"
)

// MaxBins caps the number of bins New will build.
const MaxBins = 1_000_000

// maxPrecision bounds the rounding applied to boundaries.
const maxPrecision = 12

// Bin is one labeled sub-range. Start is inclusive; membership is decided by
// Assign, which treats only the final bin as closed on the right.
type Bin struct {
	Start float64
	End   float64
	Label string
}

// Labels returns one "{start}-{end}" label per boundary in [lower, upper).
// Each end is the next boundary minus one, except the last, which is upper.
// The minus-one rule targets integer-valued data; with steps of 1 or less the
// ends fall below their starts (Labels(0, 1, 0.5) is "0--0.5", "0.5-1").
//
//	Labels(17, 85, 8) // 17-24 25-32 ... 73-80 81-85
func Labels(lower, upper, step float64) ([]string, error) {
	bs, err := New(lower, upper, step)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Label
	}
	return out, nil
}

// New builds the bins for [lower, upper) stepped by step. Boundaries are
// rounded to the decimal precision of lower and step.
func New(lower, upper, step float64) ([]Bin, error) {
	if err := validate(lower, upper, step); err != nil {
		return nil, err
	}
	prec := decimals(lower)
	if d := decimals(step); d > prec {
		prec = d
	}
	var starts []float64
	for i := 0; ; i++ {
		// boundaries are lower+i*step, never a running sum
		b := roundTo(lower+float64(i)*step, prec)
		if b >= upper {
			break
		}
		starts = append(starts, b)
	}
	out := make([]Bin, len(starts))
	for i, s := range starts {
		end := upper
		if i+1 < len(starts) {
			end = roundTo(starts[i+1]-1, prec)
		}
		out[i] = Bin{Start: s, End: end, Label: formatNum(s) + "-" + formatNum(end)}
	}
	return out, nil
}

func validate(lower, upper, step float64) error {
	for _, v := range []float64{lower, upper, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Value("bins.New", "bounds and step must be finite")
		}
	}
	if step <= 0 {
		return errs.Value("bins.New", "step must be positive, got %s", formatNum(step))
	}
	if lower >= upper {
		return errs.Value("bins.New", "lower (%s) must be less than upper (%s)", formatNum(lower), formatNum(upper))
	}
	if n := math.Ceil((upper - lower) / step); n > MaxBins {
		return errs.Value("bins.New", "%s to %s in steps of %s needs more than %d bins", formatNum(lower), formatNum(upper), formatNum(step), MaxBins)
	}
	return nil
}

// Assign returns the index of the bin containing v.
func Assign(bins []Bin, v float64) (int, bool) {
	if len(bins) == 0 || math.IsNaN(v) {
		return 0, false
	}
	last := bins[len(bins)-1]
	if v < bins[0].Start || v > last.End {
		return 0, false
	}
	// first bin whose start exceeds v, minus one
	i := sort.Search(len(bins), func(i int) bool { return bins[i].Start > v }) - 1
	return i, i >= 0
}

// Bucket maps each value to its bin label. Values outside every bin get an
// empty label and are counted in outside.
func Bucket(bins []Bin, values []float64) (labels []string, outside int) {
	labels = make([]string, len(values))
	for i, v := range values {
		idx, ok := Assign(bins, v)
		if !ok {
			outside++
			continue
		}
		labels[i] = bins[idx].Label
	}
	return labels, outside
}

// Counts returns the number of values falling in each bin.
func Counts(bins []Bin, values []float64) []int {
	out := make([]int, len(bins))
	for _, v := range values {
		if idx, ok := Assign(bins, v); ok {
			out[idx]++
		}
	}
	return out
}

// Auto builds step-wide bins covering floor(min)..ceil(max) of values.
func Auto(values []float64, step float64) ([]Bin, error) {
	if len(values) == 0 {
		return nil, errs.Value("bins.Auto", "no numeric values to bin")
	}
	lo, err := stats.Min(values)
	if err != nil {
		return nil, errs.Value("bins.Auto", "min: %v", err)
	}
	hi, err := stats.Max(values)
	if err != nil {
		return nil, errs.Value("bins.Auto", "max: %v", err)
	}
	lower, upper := math.Floor(lo), math.Ceil(hi)
	if lower == upper {
		upper = lower + step
	}
	return New(lower, upper, step)
}

// decimals counts the digits after the decimal point in v's shortest form.
func decimals(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	if d := len(s) - i - 1; d < maxPrecision {
		return d
	}
	return maxPrecision
}

func roundTo(v float64, prec int) float64 {
	if prec == 0 {
		return v
	}
	p := math.Pow(10, float64(prec))
	return math.Round(v*p) / p
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
