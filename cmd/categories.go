package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/catbin/internal/bins"
	"github.com/KaramelBytes/catbin/internal/category"
	"github.com/KaramelBytes/catbin/internal/chart"
	"github.com/KaramelBytes/catbin/internal/column"
	"github.com/KaramelBytes/catbin/internal/utils"
	"github.com/spf13/cobra"
)

var (
	catColumn     string
	catThreshold  float64
	catAll        bool
	catPlot       string
	catFormat     string
	catBinStep    float64
	catRecode     string
	catJSON       bool
	catTable      bool
	catOutput     string
	catSheetName  string
	catSheetIndex int
	catDelimiter  string
	catTieBreak   string
	catQuiet      bool
)

// categoryResult is the JSON shape of one summarized file.
type categoryResult struct {
	File                string               `json:"file"`
	Column              string               `json:"column"`
	Rows                int                  `json:"rows"`
	Threshold           float64              `json:"threshold"`
	Limit               *int                 `json:"limit"`
	Categories          []string             `json:"categories"`
	CumulativeFrequency float64              `json:"cumulative_frequency"`
	Frequencies         []category.Frequency `json:"frequencies"`
	Recoded             []string             `json:"recoded,omitempty"`
	Chart               string               `json:"chart,omitempty"`
}

var categoriesCmd = &cobra.Command{
	Use:   "categories <files...>",
	Short: "Find the main categories of a column in CSV/TSV/XLSX files",
	Example: `  catbin categories survey.csv --column region --threshold 0.8
  catbin categories 'data/*.csv' -c grade --all --plot charts/
  catbin categories people.xlsx -c age --bin-step 10 --plot - --format text`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		if catJSON && catTable {
			return fmt.Errorf("--json and --table are mutually exclusive")
		}
		threshold := cfg.Threshold
		if cmd.Flags().Changed("threshold") {
			threshold = catThreshold
		}
		tb, err := category.ParseTieBreak(firstNonEmpty(catTieBreak, cfg.TieBreak))
		if err != nil {
			return err
		}
		delim, err := parseDelimiter(firstNonEmpty(catDelimiter, cfg.Delimiter))
		if err != nil {
			return err
		}
		opt := category.Options{
			Decimals: cfg.Decimals,
			TieBreak: tb,
			Logger:   log.New(cmd.ErrOrStderr(), "", 0),
		}
		loadOpt := column.LoadOptions{
			Delimiter:  delim,
			MaxRows:    cfg.MaxRows,
			SheetName:  catSheetName,
			SheetIndex: catSheetIndex,
		}

		out := cmd.OutOrStdout()
		var report strings.Builder
		var results []categoryResult
		total := len(files)
		for i, path := range files {
			if total > 1 && !catQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			col, err := loadColumn(path, catColumn, loadOpt)
			if err != nil {
				return err
			}
			var input column.Column = col
			if catBinStep > 0 {
				input, err = bucketColumn(col, catBinStep)
				if err != nil {
					return err
				}
			}
			s, err := category.New(input, threshold, opt)
			if err != nil {
				return err
			}

			res := categoryResult{
				File:                path,
				Column:              input.Name(),
				Rows:                s.Rows(),
				Threshold:           s.Threshold(),
				Categories:          s.Categories(),
				CumulativeFrequency: s.CumulativeFrequency(),
				Frequencies:         s.FrequencyTable(),
			}
			if n, ok := s.Limit(); ok {
				res.Limit = &n
			}
			if catRecode != "" {
				res.Recoded = s.Recode(catRecode)
			}
			if catPlot != "" {
				dest, err := writeChart(out, chartTarget{Dest: catPlot, Format: catFormat, Name: input.Name()}, func(r chart.Renderer) error {
					return s.PlotCats(r, !catAll)
				})
				if err != nil {
					return err
				}
				res.Chart = dest
				if dest != "" && !catQuiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "✓ Chart written to %s\n", dest)
				}
			}
			results = append(results, res)

			switch {
			case catJSON:
			case catTable:
				report.WriteString(s.Table())
				report.WriteString("\n")
			default:
				if total > 1 {
					report.WriteString(fmt.Sprintf("File: %s\n", path))
				}
				report.WriteString(s.Markdown())
				if res.Recoded != nil {
					report.WriteString(recodeSection(res.Recoded, catRecode))
				}
				report.WriteString("\n")
			}
		}

		text := report.String()
		if catJSON {
			var v any = results
			if len(results) == 1 {
				v = results[0]
			}
			b, err := utils.PrettyJSON(v)
			if err != nil {
				return err
			}
			text = string(b) + "\n"
		}
		if catOutput == "" {
			_, err := fmt.Fprint(out, text)
			return err
		}
		dest := resolveOutput(catOutput)
		if err := utils.SafeWriteFile(dest, []byte(text)); err != nil {
			return err
		}
		if !catQuiet {
			fmt.Fprintf(out, "✓ Summary written to %s\n", dest)
		}
		return nil
	},
}

// bucketColumn replaces numeric cells with the label of their fixed-width bin.
func bucketColumn(col column.Column, step float64) (column.Column, error) {
	values, skipped := column.Numbers(col)
	if len(values) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values to bin", col.Name())
	}
	bs, err := bins.Auto(values, step)
	if err != nil {
		return nil, err
	}
	labels, _ := bins.Bucket(bs, values)
	debugf("binned %s into %d bins (step %v, %d non-numeric skipped)", col.Name(), len(bs), step, skipped)
	return column.NewSequence(col.Name(), labels), nil
}

func recodeSection(values []string, other string) string {
	counts := map[string]int{}
	var order []string
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n[RECODED] (other=%q)\n", other))
	for _, v := range order {
		b.WriteString(fmt.Sprintf("- %s: %d\n", v, counts[v]))
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().StringVarP(&catColumn, "column", "c", "", "column name (default: first column)")
	categoriesCmd.Flags().Float64VarP(&catThreshold, "threshold", "t", 0.8, "cumulative frequency threshold in [0,1] (overrides config)")
	categoriesCmd.Flags().BoolVar(&catAll, "all", false, "plot every category instead of only the main ones")
	categoriesCmd.Flags().StringVar(&catPlot, "plot", "", "write a bar chart: file path, directory, or '-' for stdout")
	categoriesCmd.Flags().StringVar(&catFormat, "format", "", "chart format: png|svg|html|text (default from extension or config)")
	categoriesCmd.Flags().Float64Var(&catBinStep, "bin-step", 0, "bucket a numeric column into fixed-width bins first")
	categoriesCmd.Flags().StringVar(&catRecode, "recode", "", "replace non-main categories with this value and report the result")
	categoriesCmd.Flags().BoolVar(&catJSON, "json", false, "print results as JSON")
	categoriesCmd.Flags().BoolVar(&catTable, "table", false, "print the frequency table as a text table")
	categoriesCmd.Flags().StringVarP(&catOutput, "output", "o", "", "write the summary to a file instead of stdout")
	categoriesCmd.Flags().StringVar(&catSheetName, "sheet-name", "", "XLSX: sheet name to read")
	categoriesCmd.Flags().IntVar(&catSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	categoriesCmd.Flags().StringVar(&catDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	categoriesCmd.Flags().StringVar(&catTieBreak, "tie-break", "", "order of equal counts: first|lexical (overrides config)")
	categoriesCmd.Flags().BoolVarP(&catQuiet, "quiet", "q", false, "suppress progress messages")
}
