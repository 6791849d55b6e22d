package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/catbin/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "catbin",
	Short: "catbin: fixed-width bin labels and main-category summaries",
	Long: `catbin labels numeric ranges with fixed-width bins and finds the main categories
of a categorical column: the most frequent values whose cumulative share stays
within a threshold. Results print as Markdown, tables or JSON and can be charted
as PNG, SVG, HTML or terminal bars.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.catbin/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Threshold: 0.8, Decimals: 4, TieBreak: "first", ChartFormat: "png", OutputDir: ".", MaxRows: 100000}
	}
	cfg = c
	debugf("config: threshold=%v decimals=%d tie_break=%s chart_format=%s output_dir=%s max_rows=%d",
		cfg.Threshold, cfg.Decimals, cfg.TieBreak, cfg.ChartFormat, cfg.OutputDir, cfg.MaxRows)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
