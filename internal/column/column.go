// Package column provides the one-column inputs consumed by the category
// summarizer, plus loaders that read them from CSV and XLSX files.
package column

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/KaramelBytes/catbin/internal/errs"
)

// Column is an ordered sequence of category values.
type Column interface {
	Name() string
	// Values returns the cells in row order. Callers must not modify the slice.
	Values() []string
}

// SequenceColumn is a named one-dimensional sequence.
type SequenceColumn struct {
	name   string
	values []string
}

// NewSequence wraps values without copying.
func NewSequence(name string, values []string) *SequenceColumn {
	return &SequenceColumn{name: name, values: values}
}

func (s *SequenceColumn) Name() string     { return s.name }
func (s *SequenceColumn) Values() []string { return s.values }

// Table is tabular data with a header row. A Table of width one is the
// single-column table form accepted by the summarizer.
type Table struct {
	Header []string
	Rows   [][]string
	// Source is a display name such as the file the table was read from.
	Source string
}

// Width returns the number of columns.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Header)
}

// Name returns the first header, or "(unnamed)".
func (t *Table) Name() string {
	if t.Width() == 0 {
		return "(unnamed)"
	}
	return safeName(t.Header[0])
}

// Values returns the first column. Short rows yield empty cells.
func (t *Table) Values() []string {
	return t.cells(0)
}

func (t *Table) cells(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = strings.TrimSpace(row[idx])
		}
	}
	return out
}

// Index returns the position of the named column (case-insensitive).
func (t *Table) Index(name string) (int, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i, true
		}
	}
	return 0, false
}

// Select extracts the named column.
func (t *Table) Select(name string) (*SequenceColumn, error) {
	idx, ok := t.Index(name)
	if !ok {
		return nil, errs.Value("column.Select", "column %q not found; available: %s", name, strings.Join(t.Header, ", "))
	}
	return NewSequence(safeName(t.Header[idx]), t.cells(idx)), nil
}

// Numbers parses the numeric cells of col. Empty and non-numeric cells are
// skipped and counted.
func Numbers(col Column) (nums []float64, skipped int) {
	vals := col.Values()
	nums = make([]float64, 0, len(vals))
	for _, v := range vals {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			skipped++
			continue
		}
		nums = append(nums, f)
	}
	return nums, skipped
}

// From adapts common Go values to a Column. Scalars and unsupported types
// fail with a TypeKind error.
func From(v any) (Column, error) {
	switch x := v.(type) {
	case nil:
		return nil, errs.Type("column.From", "input is nil")
	case Column:
		if IsNil(x) {
			return nil, errs.Type("column.From", "input is a nil %T", x)
		}
		return x, nil
	case []string:
		return NewSequence("", x), nil
	case []int:
		return NewSequence("", mapStrings(x, func(i int) string { return strconv.Itoa(i) })), nil
	case []int64:
		return NewSequence("", mapStrings(x, func(i int64) string { return strconv.FormatInt(i, 10) })), nil
	case []float64:
		return NewSequence("", mapStrings(x, func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) })), nil
	case []bool:
		return NewSequence("", mapStrings(x, strconv.FormatBool)), nil
	case []fmt.Stringer:
		return NewSequence("", mapStrings(x, func(s fmt.Stringer) string { return s.String() })), nil
	case [][]string:
		if len(x) == 0 {
			return &Table{}, nil
		}
		return &Table{Header: x[0], Rows: x[1:]}, nil
	default:
		return nil, errs.Type("column.From", "unsupported input %T: want a sequence or a one-column table", v)
	}
}

// IsNil reports whether col is nil or an interface holding a nil pointer.
func IsNil(col Column) bool {
	if col == nil {
		return true
	}
	v := reflect.ValueOf(col)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func mapStrings[T any](in []T, f func(T) string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
