// Package chart renders labeled bar charts.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/catbin/internal/errs"
)

// Bar is the data for one bar chart.
type Bar struct {
	Title  string
	YName  string
	Labels []string
	Values []float64
}

// Renderer draws a labeled bar chart.
type Renderer interface {
	RenderBar(b Bar) error
}

// Validate checks that b has at least one bar and matching labels/values.
func (b Bar) Validate() error {
	if len(b.Labels) == 0 {
		return errs.Value("chart.RenderBar", "no bars to render")
	}
	if len(b.Labels) != len(b.Values) {
		return errs.Value("chart.RenderBar", "%d labels but %d values", len(b.Labels), len(b.Values))
	}
	return nil
}

func (b Bar) maxValue() float64 {
	if len(b.Values) == 0 {
		return 0
	}
	m := b.Values[0]
	for _, v := range b.Values {
		if v > m {
			m = v
		}
	}
	return m
}

// Formats accepted by ForFormat.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatText = "text"
)

// ForFormat returns the renderer for a format name. Zero width/height pick a
// size from the number of bars (image formats) or the terminal (text).
func ForFormat(format string, w io.Writer, width, height int) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPNG, "":
		return &ImageRenderer{W: w, Format: FormatPNG, Width: width, Height: height}, nil
	case FormatSVG:
		return &ImageRenderer{W: w, Format: FormatSVG, Width: width, Height: height}, nil
	case FormatHTML:
		r := &HTMLRenderer{W: w}
		if width > 0 {
			r.Width = fmt.Sprintf("%dpx", width)
		}
		if height > 0 {
			r.Height = fmt.Sprintf("%dpx", height)
		}
		return r, nil
	case FormatText, "txt":
		return &TextRenderer{W: w, Width: width}, nil
	default:
		return nil, errs.Value("chart.ForFormat", "unsupported format %q (use png, svg, html or text)", format)
	}
}

// FormatFromPath guesses a format from a file extension, or returns "".
func FormatFromPath(path string) string {
	lower := strings.ToLower(path)
	for _, f := range []string{FormatPNG, FormatSVG, FormatHTML} {
		if strings.HasSuffix(lower, "."+f) {
			return f
		}
	}
	if strings.HasSuffix(lower, ".htm") {
		return FormatHTML
	}
	if strings.HasSuffix(lower, ".txt") {
		return FormatText
	}
	return ""
}

// gridStep picks a round tick spacing for a y axis ending near maxValue.
func gridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude
	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}
	return step * magnitude
}
