package category

import (
	"fmt"

	"github.com/KaramelBytes/catbin/internal/chart"
)

// PlotCats renders the frequency table as a bar chart. With subset set only
// the main categories are drawn. When there are no main categories it logs a
// message and draws nothing.
func (s *Summarizer) PlotCats(r chart.Renderer, subset bool) error {
	if s.cats == nil {
		s.opt.Logger.Println("No categories available for plotting.")
		return nil
	}
	rows := s.freqs
	title := "Category frequency"
	if subset {
		rows = s.freqs[:s.limit]
		title = fmt.Sprintf("Top %d most frequent", s.limit)
	}
	b := chart.Bar{
		Title:  title,
		YName:  "proportion",
		Labels: make([]string, len(rows)),
		Values: make([]float64, len(rows)),
	}
	for i, f := range rows {
		b.Labels[i] = f.Value
		b.Values[i] = f.Proportion
	}
	if err := r.RenderBar(b); err != nil {
		return fmt.Errorf("plot categories: %w", err)
	}
	return nil
}
