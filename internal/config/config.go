// Package config assembles the circlez run configuration from defaults, an
// optional YAML file, the environment (including a .env file) and flags.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gogpu/circlez"
	"github.com/gogpu/circlez/internal/imageio"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CIRCLEZ_"

// Config holds all configuration values.
type Config struct {
	// Input is the target image path (first positional argument).
	Input string `yaml:"-"`

	// Output
	OutputDir    string `yaml:"output_dir"`
	OutputSuffix string `yaml:"output_suffix"`
	OutputFormat string `yaml:"output_format"` // extension with leading dot
	JPEGQuality  int    `yaml:"jpeg_quality"`

	// Search
	Seed          uint64 `yaml:"seed"` // 0 picks a random seed
	ColorMode     string `yaml:"color_mode"`
	Background    string `yaml:"background"`
	MaxSide       int    `yaml:"max_side"` // 0 keeps the original size
	StepsPerFrame int    `yaml:"steps_per_frame"`
	MaxSteps      uint64 `yaml:"max_steps"` // 0 runs until stopped

	// Display
	Preview       bool          `yaml:"preview"`
	PreviewAddr   string        `yaml:"preview_addr"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	ProgressEvery time.Duration `yaml:"progress_every"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"` // empty disables file logging
	LogJSON  bool   `yaml:"log_json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:     "generated_images",
		OutputSuffix:  "_circlez",
		OutputFormat:  ".jpg",
		JPEGQuality:   imageio.DefaultJPEGQuality,
		ColorMode:     "random",
		Background:    "#000000",
		StepsPerFrame: 4096,
		Preview:       true,
		PreviewAddr:   "localhost:8080",
		FrameInterval: 100 * time.Millisecond,
		ProgressEvery: 5 * time.Second,
		LogLevel:      "info",
	}
}

// Load builds the configuration for args (without the program name).
// Precedence, lowest first: defaults, YAML file (-config or
// CIRCLEZ_CONFIG), environment and .env, flags.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("circlez", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file (default $CIRCLEZ_CONFIG)")
	envFile := fs.String("env-file", ".env", "dotenv file to load if present")

	// Flag defaults are filled in after file and environment are applied;
	// register into a scratch config so parsing can happen first.
	var fl Config
	registerFlags(fs, &fl)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", *envFile, err)
		}
	}
	// Resolved after .env so CIRCLEZ_CONFIG may come from it.
	path := *configPath
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	// Only flags set explicitly override lower layers.
	fs.Visit(func(f *flag.Flag) { applyFlag(&cfg, &fl, f.Name) })

	if fs.NArg() > 0 {
		cfg.Input = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return cfg, fmt.Errorf("config: unexpected arguments %q", fs.Args()[1:])
	}
	return cfg, nil
}

func registerFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.OutputDir, "out-dir", "", "directory for the result image")
	fs.StringVar(&c.OutputSuffix, "suffix", "", "suffix appended to the input name")
	fs.StringVar(&c.OutputFormat, "format", "", "output extension (.jpg, .png, .bmp, .tiff)")
	fs.IntVar(&c.JPEGQuality, "quality", 0, "JPEG quality 1-100")
	fs.Uint64Var(&c.Seed, "seed", 0, "random seed (0 = random)")
	fs.StringVar(&c.ColorMode, "color", "", "candidate colors: random or weighted")
	fs.StringVar(&c.Background, "background", "", "initial canvas color, e.g. #000000")
	fs.IntVar(&c.MaxSide, "max-side", 0, "downscale the target so no side exceeds this")
	fs.IntVar(&c.StepsPerFrame, "iterations", 0, "steps between two displayed frames")
	fs.Uint64Var(&c.MaxSteps, "max-steps", 0, "stop after this many steps (0 = until stopped)")
	fs.BoolVar(&c.Preview, "preview", false, "serve a live preview")
	fs.StringVar(&c.PreviewAddr, "addr", "", "preview listen address")
	fs.DurationVar(&c.FrameInterval, "frame-interval", 0, "minimum time between preview frames")
	fs.DurationVar(&c.ProgressEvery, "progress", 0, "interval between progress log lines")
	fs.StringVar(&c.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", "", "rotated log file")
	fs.BoolVar(&c.LogJSON, "log-json", false, "log JSON to the console")
}

func applyFlag(dst, fl *Config, name string) {
	switch name {
	case "out-dir":
		dst.OutputDir = fl.OutputDir
	case "suffix":
		dst.OutputSuffix = fl.OutputSuffix
	case "format":
		dst.OutputFormat = fl.OutputFormat
	case "quality":
		dst.JPEGQuality = fl.JPEGQuality
	case "seed":
		dst.Seed = fl.Seed
	case "color":
		dst.ColorMode = fl.ColorMode
	case "background":
		dst.Background = fl.Background
	case "max-side":
		dst.MaxSide = fl.MaxSide
	case "iterations":
		dst.StepsPerFrame = fl.StepsPerFrame
	case "max-steps":
		dst.MaxSteps = fl.MaxSteps
	case "preview":
		dst.Preview = fl.Preview
	case "addr":
		dst.PreviewAddr = fl.PreviewAddr
	case "frame-interval":
		dst.FrameInterval = fl.FrameInterval
	case "progress":
		dst.ProgressEvery = fl.ProgressEvery
	case "log-level":
		dst.LogLevel = fl.LogLevel
	case "log-file":
		dst.LogFile = fl.LogFile
	case "log-json":
		dst.LogJSON = fl.LogJSON
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from CIRCLEZ_* variables.
func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	var err error
	parse := func(key string, fn func(string) error) {
		if v := os.Getenv(EnvPrefix + key); v != "" && err == nil {
			if perr := fn(v); perr != nil {
				err = fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, key, v, perr)
			}
		}
	}

	str("OUTPUT_DIR", &c.OutputDir)
	str("OUTPUT_SUFFIX", &c.OutputSuffix)
	str("OUTPUT_FORMAT", &c.OutputFormat)
	str("COLOR_MODE", &c.ColorMode)
	str("BACKGROUND", &c.Background)
	str("PREVIEW_ADDR", &c.PreviewAddr)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)

	parse("JPEG_QUALITY", func(v string) (e error) { c.JPEGQuality, e = strconv.Atoi(v); return })
	parse("SEED", func(v string) (e error) { c.Seed, e = strconv.ParseUint(v, 10, 64); return })
	parse("MAX_SIDE", func(v string) (e error) { c.MaxSide, e = strconv.Atoi(v); return })
	parse("STEPS_PER_FRAME", func(v string) (e error) { c.StepsPerFrame, e = strconv.Atoi(v); return })
	parse("MAX_STEPS", func(v string) (e error) { c.MaxSteps, e = strconv.ParseUint(v, 10, 64); return })
	parse("PREVIEW", func(v string) (e error) { c.Preview, e = strconv.ParseBool(v); return })
	parse("FRAME_INTERVAL", func(v string) (e error) { c.FrameInterval, e = time.ParseDuration(v); return })
	parse("PROGRESS_EVERY", func(v string) (e error) { c.ProgressEvery, e = time.ParseDuration(v); return })
	parse("LOG_JSON", func(v string) (e error) { c.LogJSON, e = strconv.ParseBool(v); return })
	return err
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("config: missing target image path")
	}
	if c.StepsPerFrame <= 0 {
		return fmt.Errorf("config: steps per frame must be positive, got %d", c.StepsPerFrame)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("config: jpeg quality must be 1-100, got %d", c.JPEGQuality)
	}
	if c.MaxSide < 0 {
		return fmt.Errorf("config: max side must not be negative, got %d", c.MaxSide)
	}
	if c.FrameInterval < 0 || c.ProgressEvery < 0 {
		return errors.New("config: intervals must not be negative")
	}
	if !imageio.SupportedExtension(c.OutputFormat) {
		return fmt.Errorf("config: unsupported output format %q", c.OutputFormat)
	}
	if _, err := circlez.ParseColorMode(c.ColorMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := circlez.Hex(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if c.Preview && c.PreviewAddr == "" {
		return errors.New("config: preview enabled without an address")
	}
	return nil
}

// OutputPath returns where the result for Input is written.
func (c Config) OutputPath() string {
	return imageio.OutputPath(c.Input, c.OutputDir, c.OutputSuffix, c.OutputFormat)
}
