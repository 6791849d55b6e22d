package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ImageRenderer draws bar charts as PNG or SVG with go-chart.
type ImageRenderer struct {
	W      io.Writer
	Format string // FormatPNG (default) or FormatSVG
	Width  int
	Height int
}

const (
	barWidth   = 40
	barSpacing = 20
	minWidth   = 600
	minHeight  = 400
)

func (r *ImageRenderer) RenderBar(b Bar) error {
	if err := b.Validate(); err != nil {
		return err
	}
	values := make([]gochart.Value, len(b.Values))
	for i, v := range b.Values {
		values[i] = gochart.Value{
			Value: v,
			Label: b.Labels[i],
			Style: gochart.Style{
				FillColor:   drawing.ColorBlue.WithAlpha(160),
				StrokeColor: drawing.ColorBlue,
				StrokeWidth: 1,
			},
		}
	}
	width, height := r.dimensions(len(values))
	maxY, ticks := yTicks(b.maxValue())
	bar := gochart.BarChart{
		Title:      b.Title,
		TitleStyle: gochart.Style{FontSize: 14},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: labelPadding(b.Labels),
			},
			FillColor: drawing.ColorWhite,
		},
		XAxis: gochart.Style{
			StrokeWidth:         1,
			StrokeColor:         gochart.ColorBlack,
			TextRotationDegrees: 45,
		},
		YAxis: gochart.YAxis{
			Name:  b.YName,
			Range: &gochart.ContinuousRange{Min: 0, Max: maxY},
			Ticks: ticks,
			GridMajorStyle: gochart.Style{
				StrokeColor:     drawing.ColorFromHex("cccccc"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		Bars: values,
	}

	provider := gochart.PNG
	if r.Format == FormatSVG {
		provider = gochart.SVG
	}
	if err := bar.Render(provider, r.W); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}

// dimensions sizes the canvas so every bar fits; explicit sizes win.
func (r *ImageRenderer) dimensions(n int) (width, height int) {
	width, height = r.Width, r.Height
	if width <= 0 {
		width = (barWidth+barSpacing)*n + 200
		if width < minWidth {
			width = minWidth
		}
	}
	if height <= 0 {
		height = int(float64(width) * 9.0 / 16.0)
		if height < minHeight {
			height = minHeight
		}
	}
	return width, height
}

func yTicks(maxValue float64) (float64, []gochart.Tick) {
	if maxValue <= 0 {
		maxValue = 1
	}
	step := gridStep(maxValue)
	n := int(math.Ceil(maxValue/step - 1e-9))
	ticks := make([]gochart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := float64(i) * step
		ticks = append(ticks, gochart.Tick{Value: v, Label: formatTick(v)})
	}
	return float64(n) * step, ticks
}

func formatTick(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}

// labelPadding leaves room below the axis for rotated labels.
func labelPadding(labels []string) int {
	longest := 0
	for _, l := range labels {
		if len(l) > longest {
			longest = len(l)
		}
	}
	return 40 + longest*6
}
