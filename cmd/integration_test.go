package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/catbin/internal/errs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args in an isolated HOME and returns
// stdout. Flags are reset first because cobra keeps their values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, c := range []*cobra.Command{rootCmd, binsCmd, categoriesCmd, configCmd, configShowCmd, configSetCmd} {
		reset := func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCLI_BinsLabels(t *testing.T) {
	out := runCmd(t, "bins", "17", "85", "8")
	want := "17-24\n25-32\n33-40\n41-48\n49-56\n57-64\n65-72\n73-80\n81-85\n"
	assert.Equal(t, want, out)

	out = runCmd(t, "bins", "0", "20", "10", "--table")
	assert.Contains(t, out, "0-9")
	assert.Contains(t, out, "10-20")
}

func TestCLI_BinsRejectsEmptyRange(t *testing.T) {
	_, err := execute(t, "bins", "10", "10", "1")
	assert.ErrorIs(t, err, errs.ErrValue)

	_, err = execute(t, "bins", "a", "10", "1")
	assert.Error(t, err)
}

func TestCLI_BinsColumnHistogram(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "people.csv", "name,age\nann,17\nbob,24\ncid,30\ndee,n/a\neve,41\n")
	out := runCmd(t, "bins", "--file", csv, "--column", "age", "--step", "10", "--plot", "-")
	assert.Contains(t, out, "17-26")
	assert.Contains(t, out, "⚠ Skipped 1 non-numeric cells")
	assert.Contains(t, out, "age histogram")
}

func TestCLI_CategoriesSummaryAndChart(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "grades.csv", "student,grade\n1,a\n2,a\n3,a\n4,b\n5,b\n6,c\n")
	png := filepath.Join(dir, "charts", "grades.png")

	out := runCmd(t, "categories", csv, "--column", "grade", "--threshold", "0.6", "--plot", png)
	assert.Contains(t, out, "[CATEGORY SUMMARY]")
	assert.Contains(t, out, "Column: grade")
	assert.Contains(t, out, "Limit: 1")
	assert.Contains(t, out, "Main categories: a")
	assert.Contains(t, out, "Cumulative frequency: 0.5")

	b, err := os.ReadFile(png)
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), b[:8])
}

func TestCLI_CategoriesJSONAndOutput(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "grades.csv", "grade\na\na\na\nb\nb\nc\n")
	dest := filepath.Join(dir, "summary.json")

	out := runCmd(t, "categories", csv, "-t", "0.9", "--json", "--recode", "other", "-o", dest)
	assert.Contains(t, out, "✓ Summary written to")

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	var res categoryResult
	require.NoError(t, json.Unmarshal(b, &res))
	require.NotNil(t, res.Limit)
	assert.Equal(t, 2, *res.Limit)
	assert.Equal(t, []string{"a", "b"}, res.Categories)
	assert.Equal(t, 0.8333, res.CumulativeFrequency)
	assert.Equal(t, []string{"a", "a", "a", "b", "b", "other"}, res.Recoded)
}

func TestCLI_OutputDirHoldsBareFileNames(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "reports")
	t.Setenv("CATBIN_OUTPUT_DIR", outDir)
	csv := writeCSV(t, dir, "grades.csv", "grade\na\na\nb\n")

	runCmd(t, "categories", csv, "-t", "0.7", "--plot", "grades.svg", "-o", "summary.md", "-q")

	svg, err := os.ReadFile(filepath.Join(outDir, "grades.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	md, err := os.ReadFile(filepath.Join(outDir, "summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "Main categories: a")

	explicit := filepath.Join(dir, "elsewhere", "grades.png")
	runCmd(t, "categories", csv, "-t", "0.7", "--plot", explicit, "-q")
	_, err = os.Stat(explicit)
	assert.NoError(t, err)
}

func TestCLI_CategoriesNothingToPlot(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "flat.csv", "v\nx\ny\nz\nw\n")
	charts := filepath.Join(dir, "charts") + string(os.PathSeparator)

	out := runCmd(t, "categories", csv, "-t", "0.1", "--plot", charts, "--table")
	assert.Contains(t, out, "v (threshold 0.1)")
	_, err := os.Stat(charts)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_CategoriesBinStepAcrossGlob(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a.csv", "age\n18\n19\n25\n")
	writeCSV(t, dir, "b.csv", "age\n40\n41\n42\n")

	out := runCmd(t, "categories", filepath.Join(dir, "*.csv"), filepath.Join(dir, "a.csv"), "--bin-step", "5", "-t", "1", "-q")
	assert.Equal(t, 2, strings.Count(out, "[CATEGORY SUMMARY]"))
	assert.Contains(t, out, "- 18-22: 2")
	assert.Contains(t, out, "- 40-42: 3")
}

func TestCLI_CategoriesRejectsBadThreshold(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "g.csv", "g\na\n")
	_, err := execute(t, "categories", csv, "-t", "1.5")
	assert.ErrorIs(t, err, errs.ErrValue)

	_, err = execute(t, "categories", filepath.Join(dir, "missing-*.csv"))
	assert.Error(t, err)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	out := runCmd(t, "--config", cfgPath, "config", "set", "threshold", "0.65")
	assert.Contains(t, out, "✓ Saved config")

	out = runCmd(t, "--config", cfgPath, "config", "show")
	assert.Contains(t, out, "threshold: 0.65")
	assert.Contains(t, out, "chart_format: png")
	assert.Contains(t, out, "delimiter: (auto)")
}
