package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/catbin/internal/bins"
	"github.com/KaramelBytes/catbin/internal/chart"
	"github.com/KaramelBytes/catbin/internal/column"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	binTable      bool
	binFile       string
	binColumn     string
	binStep       float64
	binPlot       string
	binFormat     string
	binDelimiter  string
	binSheetName  string
	binSheetIndex int
)

var binsCmd = &cobra.Command{
	Use:   "bins [<lower> <upper> <step>]",
	Short: "Print fixed-width bin labels, or bucket a numeric column",
	Example: `  catbin bins 17 85 8
  catbin bins 0 100 10 --table
  catbin bins --file people.csv --column age --step 10 --plot ages.png`,
	Args: func(cmd *cobra.Command, args []string) error {
		if binFile != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(3)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if binFile != "" {
			return runBinColumn(cmd)
		}
		var nums [3]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", a)
			}
			nums[i] = f
		}
		bs, err := bins.New(nums[0], nums[1], nums[2])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !binTable {
			for _, b := range bs {
				fmt.Fprintln(out, b.Label)
			}
			return nil
		}
		t := table.NewWriter()
		t.AppendHeader(table.Row{"#", "Start", "End", "Label"})
		for i, b := range bs {
			t.AppendRow(table.Row{i + 1, b.Start, b.End, b.Label})
		}
		t.SetStyle(table.StyleLight)
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

func runBinColumn(cmd *cobra.Command) error {
	if binStep <= 0 {
		return fmt.Errorf("--step must be positive")
	}
	delim, err := parseDelimiter(firstNonEmpty(binDelimiter, cfg.Delimiter))
	if err != nil {
		return err
	}
	col, err := loadColumn(binFile, binColumn, column.LoadOptions{
		Delimiter:  delim,
		MaxRows:    cfg.MaxRows,
		SheetName:  binSheetName,
		SheetIndex: binSheetIndex,
	})
	if err != nil {
		return err
	}
	values, skipped := column.Numbers(col)
	if len(values) == 0 {
		return fmt.Errorf("column %q has no numeric values", col.Name())
	}
	bs, err := bins.Auto(values, binStep)
	if err != nil {
		return err
	}
	counts := bins.Counts(bs, values)

	out := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (step %s)", col.Name(), strconv.FormatFloat(binStep, 'f', -1, 64)))
	t.AppendHeader(table.Row{"Bin", "Count"})
	for i, b := range bs {
		t.AppendRow(table.Row{b.Label, counts[i]})
	}
	t.AppendFooter(table.Row{"Total", len(values)})
	t.SetStyle(table.StyleLight)
	fmt.Fprintln(out, t.Render())
	if skipped > 0 {
		fmt.Fprintf(out, "⚠ Skipped %d non-numeric cells\n", skipped)
	}

	if binPlot == "" {
		return nil
	}
	bar := chart.Bar{Title: fmt.Sprintf("%s histogram", col.Name()), YName: "count"}
	for i, b := range bs {
		bar.Labels = append(bar.Labels, b.Label)
		bar.Values = append(bar.Values, float64(counts[i]))
	}
	path, err := writeChart(out, chartTarget{Dest: binPlot, Format: binFormat, Name: col.Name()}, func(r chart.Renderer) error {
		return r.RenderBar(bar)
	})
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(out, "✓ Chart written to %s\n", path)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(binsCmd)
	binsCmd.Flags().BoolVar(&binTable, "table", false, "render start/end/label as a table")
	binsCmd.Flags().StringVarP(&binFile, "file", "f", "", "CSV/TSV/XLSX file with a numeric column to bucket")
	binsCmd.Flags().StringVarP(&binColumn, "column", "c", "", "column name (default: first column)")
	binsCmd.Flags().Float64Var(&binStep, "step", 10, "bin width when bucketing a column")
	binsCmd.Flags().StringVar(&binPlot, "plot", "", "write a histogram: file path, directory, or '-' for stdout")
	binsCmd.Flags().StringVar(&binFormat, "format", "", "chart format: png|svg|html|text (default from extension or config)")
	binsCmd.Flags().StringVar(&binDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	binsCmd.Flags().StringVar(&binSheetName, "sheet-name", "", "XLSX: sheet name to read")
	binsCmd.Flags().IntVar(&binSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
