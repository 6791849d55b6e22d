package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLRenderer writes a self-contained ECharts page.
type HTMLRenderer struct {
	W      io.Writer
	Width  string // CSS size, e.g. "900px"; empty keeps the echarts default
	Height string
}

func (r *HTMLRenderer) RenderBar(b Bar) error {
	if err := b.Validate(); err != nil {
		return err
	}
	bar := charts.NewBar()
	initOpts := opts.Initialization{PageTitle: b.Title}
	if r.Width != "" {
		initOpts.Width = r.Width
	}
	if r.Height != "" {
		initOpts.Height = r.Height
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: b.Title}),
	)
	items := make([]opts.BarData, len(b.Values))
	for i, v := range b.Values {
		items[i] = opts.BarData{Name: b.Labels[i], Value: v}
	}
	name := b.YName
	if name == "" {
		name = "value"
	}
	bar.SetXAxis(b.Labels).AddSeries(name, items)
	if err := bar.Render(r.W); err != nil {
		return fmt.Errorf("error rendering html chart: %w", err)
	}
	return nil
}
