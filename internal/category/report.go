package category

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Markdown renders a compact summary followed by the frequency table.
func (s *Summarizer) Markdown() string {
	var b strings.Builder
	b.WriteString("[CATEGORY SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Column: %s\n", safeName(s.col.Name())))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.rows))
	b.WriteString(fmt.Sprintf("Distinct: %d\n", len(s.freqs)))
	b.WriteString(fmt.Sprintf("Threshold: %s\n", formatFloat(s.threshold)))
	if s.hasLimit {
		b.WriteString(fmt.Sprintf("Limit: %d\n", s.limit))
	} else {
		b.WriteString("Limit: none\n")
	}
	if s.cats != nil {
		b.WriteString(fmt.Sprintf("Main categories: %s\n", strings.Join(s.cats, ", ")))
	}
	b.WriteString(fmt.Sprintf("Cumulative frequency: %s\n\n", formatFloat(s.cumFreq)))

	b.WriteString("[FREQUENCY TABLE]\n")
	for i, f := range s.freqs {
		b.WriteString(fmt.Sprintf("- %s: %d (%s, cum %s)", safeName(f.Value), f.Count, formatFloat(f.Proportion), formatFloat(f.Cumulative)))
		if i < s.limit {
			b.WriteString(" top")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Table renders the frequency table as a bordered text table.
func (s *Summarizer) Table() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (threshold %s)", safeName(s.col.Name()), formatFloat(s.threshold)))
	t.AppendHeader(table.Row{"#", "Value", "Count", "Proportion", "Cumulative", "Top"})
	for i, f := range s.freqs {
		top := ""
		if i < s.limit {
			top = "✓"
		}
		t.AppendRow(table.Row{i + 1, f.Value, f.Count, formatFloat(f.Proportion), formatFloat(f.Cumulative), top})
	}
	t.AppendFooter(table.Row{"", "Total", s.rows, "", formatFloat(s.cumFreq), len(s.cats)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignCenter},
	})
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(empty)"
	}
	return s
}
