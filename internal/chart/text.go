package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minBarCells         = 10
	maxLabelWidth       = 24
	barGlyph            = "█"
	axisSeparator       = " │ "
)

// TextRenderer draws horizontal bars, one line per label.
type TextRenderer struct {
	W io.Writer
	// Width is the total line width; 0 uses the terminal width.
	Width int
}

func (r *TextRenderer) RenderBar(b Bar) error {
	if err := b.Validate(); err != nil {
		return err
	}
	width := r.Width
	if width <= 0 {
		width = terminalWidth(r.W)
	}

	labelWidth := 0
	for _, l := range b.Labels {
		if w := runewidth.StringWidth(l); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}
	valueTexts := make([]string, len(b.Values))
	valueWidth := 0
	for i, v := range b.Values {
		valueTexts[i] = strconv.FormatFloat(v, 'f', -1, 64)
		if len(valueTexts[i]) > valueWidth {
			valueWidth = len(valueTexts[i])
		}
	}
	cells := width - labelWidth - runewidth.StringWidth(axisSeparator) - valueWidth - 1
	if cells < minBarCells {
		cells = minBarCells
	}

	var sb strings.Builder
	if b.Title != "" {
		sb.WriteString(b.Title)
		sb.WriteByte('\n')
	}
	max := b.maxValue()
	for i, v := range b.Values {
		n := 0
		if max > 0 && v > 0 {
			n = int(math.Round(v / max * float64(cells)))
		}
		label := runewidth.Truncate(b.Labels[i], labelWidth, "…")
		sb.WriteString(runewidth.FillRight(label, labelWidth))
		sb.WriteString(axisSeparator)
		sb.WriteString(strings.Repeat(barGlyph, n))
		sb.WriteByte(' ')
		sb.WriteString(valueTexts[i])
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(r.W, sb.String()); err != nil {
		return fmt.Errorf("write text chart: %w", err)
	}
	return nil
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
