package column

import (
	"path/filepath"

	"github.com/KaramelBytes/catbin/internal/errs"
)

// LoadOptions controls how tabular files are read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// SheetName selects an XLSX sheet; takes precedence over SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet position (default 1).
	SheetIndex int
}

// Loader reads a table from a file it recognizes.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt LoadOptions) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on filename and reads the table.
func Load(path string, opt LoadOptions) (*Table, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			t, err := l.Load(path, opt)
			if err != nil {
				return nil, err
			}
			if t.Source == "" {
				t.Source = filepath.Base(path)
			}
			return t, nil
		}
	}
	return nil, errs.Value("column.Load", "unsupported file format: %s (use .csv, .tsv or .xlsx)", filepath.Base(path))
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
