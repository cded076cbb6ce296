package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// noEnvFile keeps a stray .env in the package directory out of the tests.
var noEnvFile = []string{"-env-file", ""}

func load(t *testing.T, args ...string) Config {
	t.Helper()
	cfg, err := Load(append(append([]string{}, noEnvFile...), args...))
	if err != nil {
		t.Fatalf("Load(%q) = %v", args, err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := load(t, "cat.png")
	want := Default()
	want.Input = "cat.png"
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if got := cfg.OutputPath(); got != filepath.Join("generated_images", "cat_circlez.jpg") {
		t.Errorf("OutputPath() = %q", got)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "circlez.yaml")
	yaml := "steps_per_frame: 100\ncolor_mode: weighted\nseed: 7\nframe_interval: 250ms\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CIRCLEZ_SEED", "9")
	t.Setenv("CIRCLEZ_OUTPUT_DIR", "from-env")

	cfg := load(t, "-config", file, "-out-dir", "from-flag", "-preview=false", "in.jpg")

	if cfg.StepsPerFrame != 100 {
		t.Errorf("StepsPerFrame = %d, want 100 from file", cfg.StepsPerFrame)
	}
	if cfg.ColorMode != "weighted" {
		t.Errorf("ColorMode = %q, want weighted from file", cfg.ColorMode)
	}
	if cfg.FrameInterval != 250*time.Millisecond {
		t.Errorf("FrameInterval = %v, want 250ms from file", cfg.FrameInterval)
	}
	if cfg.Seed != 9 {
		t.Errorf("Seed = %d, want 9 from env", cfg.Seed)
	}
	if cfg.OutputDir != "from-flag" {
		t.Errorf("OutputDir = %q, want flag to win", cfg.OutputDir)
	}
	if cfg.Preview {
		t.Error("Preview = true, want false from flag")
	}
	if cfg.Input != "in.jpg" {
		t.Errorf("Input = %q", cfg.Input)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	env := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(env, []byte("CIRCLEZ_STEPS_PER_FRAME=12\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("CIRCLEZ_STEPS_PER_FRAME") })

	cfg, err := Load([]string{"-env-file", env, "a.png"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StepsPerFrame != 12 {
		t.Errorf("StepsPerFrame = %d, want 12 from .env", cfg.StepsPerFrame)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Load([]string{"-env-file", filepath.Join(t.TempDir(), "nope.env"), "a.png"}); err != nil {
		t.Errorf("Load() = %v, want missing .env ignored", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("colour: red\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{"missing file", []string{"-config", filepath.Join(dir, "none.yaml")}, nil, "read"},
		{"unknown key", []string{"-config", unknown}, nil, "parse"},
		{"bad env", []string{"a.png"}, map[string]string{"CIRCLEZ_MAX_STEPS": "lots"}, "CIRCLEZ_MAX_STEPS"},
		{"extra args", []string{"a.png", "b.png"}, nil, "unexpected"},
		{"bad flag", []string{"-iterations", "x"}, nil, "invalid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(append(append([]string{}, noEnvFile...), tt.args...))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load(%q) error = %v, want containing %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Input = "a.png"

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no input", func(c *Config) { c.Input = "" }},
		{"zero steps", func(c *Config) { c.StepsPerFrame = 0 }},
		{"quality", func(c *Config) { c.JPEGQuality = 101 }},
		{"max side", func(c *Config) { c.MaxSide = -1 }},
		{"interval", func(c *Config) { c.ProgressEvery = -time.Second }},
		{"format", func(c *Config) { c.OutputFormat = ".gif" }},
		{"color mode", func(c *Config) { c.ColorMode = "rainbow" }},
		{"background", func(c *Config) { c.Background = "#12" }},
		{"preview addr", func(c *Config) { c.PreviewAddr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Errorf("Validate() = nil for %+v", c)
			}
		})
	}

	headless := valid
	headless.Preview = false
	headless.PreviewAddr = ""
	if err := headless.Validate(); err != nil {
		t.Errorf("Validate() headless = %v", err)
	}
}

func TestLoad_ExampleFileMatchesDefaults(t *testing.T) {
	cfg := load(t, "-config", filepath.Join("..", "..", "circlez.example.yaml"), "a.png")
	want := Default()
	want.Input = "a.png"
	if cfg != want {
		t.Errorf("example config = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_ConfigPathFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "circlez.yaml")
	if err := os.WriteFile(file, []byte("steps_per_frame: 33\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	env := filepath.Join(dir, "test.env")
	if err := os.WriteFile(env, []byte("CIRCLEZ_CONFIG="+file+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("CIRCLEZ_CONFIG") })

	cfg, err := Load([]string{"-env-file", env, "a.png"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StepsPerFrame != 33 {
		t.Errorf("StepsPerFrame = %d, want 33 from the file named in .env", cfg.StepsPerFrame)
	}
}
