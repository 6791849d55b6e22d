package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/catbin/internal/chart"
	"github.com/KaramelBytes/catbin/internal/column"
	"github.com/KaramelBytes/catbin/internal/utils"
)

// expandInputs resolves globs, drops duplicates and sorts the result.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

// loadColumn reads path and selects the named column. An empty name picks
// the first column.
func loadColumn(path, name string, opt column.LoadOptions) (*column.SequenceColumn, error) {
	tbl, err := column.Load(path, opt)
	if err != nil {
		return nil, err
	}
	debugf("loaded %s: %d rows, %d columns", tbl.Source, len(tbl.Rows), tbl.Width())
	if name == "" {
		return column.NewSequence(tbl.Name(), tbl.Values()), nil
	}
	return tbl.Select(name)
}

// resolveOutput places a bare file name inside the configured output_dir.
// Paths with a directory component are used as given.
func resolveOutput(path string) string {
	if cfg == nil || cfg.OutputDir == "" || cfg.OutputDir == "." {
		return path
	}
	if filepath.IsAbs(path) || filepath.Dir(path) != "." {
		return path
	}
	return filepath.Join(cfg.OutputDir, path)
}

// chartTarget describes where and how a chart is written.
type chartTarget struct {
	Dest   string // "-" for stdout, a directory, or a file path
	Format string // empty picks from the extension, then the config
	Name   string // artifact prefix when Dest is a directory
}

// writeChart renders through draw and stores the result. It returns the path
// written, or "" for stdout.
func writeChart(out io.Writer, t chartTarget, draw func(chart.Renderer) error) (string, error) {
	format := strings.ToLower(t.Format)
	if format == "" && t.Dest != "-" && !utils.IsDir(resolveOutput(t.Dest)) {
		format = chart.FormatFromPath(t.Dest)
	}
	if format == "" {
		if t.Dest == "-" {
			format = chart.FormatText
		} else {
			format = cfg.ChartFormat
		}
	}
	width, height := cfg.ChartWidth, cfg.ChartHeight

	if t.Dest == "-" {
		r, err := chart.ForFormat(format, out, width, height)
		if err != nil {
			return "", err
		}
		return "", draw(r)
	}

	path := resolveOutput(t.Dest)
	if utils.IsDir(path) {
		ext := format
		if ext == chart.FormatText {
			ext = "txt"
		}
		path = utils.ArtifactPath(path, t.Name, ext)
	}
	var buf bytes.Buffer
	if format == chart.FormatText && width <= 0 {
		width = 80
	}
	r, err := chart.ForFormat(format, &buf, width, height)
	if err != nil {
		return "", err
	}
	if err := draw(r); err != nil {
		return "", err
	}
	if buf.Len() == 0 {
		return "", nil
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
