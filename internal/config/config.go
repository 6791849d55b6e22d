package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
	Decimals  int     `mapstructure:"decimals" yaml:"decimals"`
	TieBreak  string  `mapstructure:"tie_break" yaml:"tie_break"`

	// Chart output
	ChartFormat string `mapstructure:"chart_format" yaml:"chart_format"`
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`

	// Loaders
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`
}

// maxDecimals matches category.MaxDecimals.
const maxDecimals = 15

// Keys lists the settable keys in display order.
var Keys = []string{
	"threshold", "decimals", "tie_break",
	"chart_format", "chart_width", "chart_height", "output_dir",
	"delimiter", "max_rows",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".catbin"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.catbin/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
// A .env file in the working directory is read first when present.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CATBIN")
	v.AutomaticEnv()

	v.SetDefault("threshold", 0.8)
	v.SetDefault("decimals", 4)
	v.SetDefault("tie_break", "first")
	v.SetDefault("chart_format", "png")
	v.SetDefault("chart_width", 0)
	v.SetDefault("chart_height", 0)
	v.SetDefault("output_dir", ".")
	v.SetDefault("delimiter", "")
	v.SetDefault("max_rows", 100000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Decimals < 1 || c.Decimals > maxDecimals {
		return nil, fmt.Errorf("invalid decimals: %d (use 1 to %d)", c.Decimals, maxDecimals)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return nil, fmt.Errorf("invalid threshold: %v (use a proportion between 0 and 1)", c.Threshold)
	}
	return &c, nil
}

// Set parses val for key and stores it on c.
func (c *Global) Set(key, val string) error {
	switch key {
	case "threshold":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid threshold: %s (use a proportion between 0 and 1)", val)
		}
		c.Threshold = f
	case "decimals":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 || i > maxDecimals {
			return fmt.Errorf("invalid int for decimals: %v", val)
		}
		c.Decimals = i
	case "tie_break":
		switch strings.ToLower(val) {
		case "first", "lexical":
			c.TieBreak = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid tie_break: %s (use first or lexical)", val)
		}
	case "chart_format":
		switch strings.ToLower(val) {
		case "png", "svg", "html", "text":
			c.ChartFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid chart_format: %s (use png, svg, html or text)", val)
		}
	case "chart_width", "chart_height", "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "chart_width":
			c.ChartWidth = i
		case "chart_height":
			c.ChartHeight = i
		default:
			c.MaxRows = i
		}
	case "output_dir":
		c.OutputDir = val
	case "delimiter":
		c.Delimiter = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the display value of key.
func (c *Global) Get(key string) (string, bool) {
	switch key {
	case "threshold":
		return strconv.FormatFloat(c.Threshold, 'f', -1, 64), true
	case "decimals":
		return strconv.Itoa(c.Decimals), true
	case "tie_break":
		return c.TieBreak, true
	case "chart_format":
		return c.ChartFormat, true
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), true
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), true
	case "output_dir":
		return c.OutputDir, true
	case "delimiter":
		return c.Delimiter, true
	case "max_rows":
		return strconv.Itoa(c.MaxRows), true
	}
	return "", false
}
