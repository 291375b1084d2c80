package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/hauntedhouse.yaml"

// PathEnv overrides DefaultPath when set.
const PathEnv = "HAUNTED_CONFIG"

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Config holds startup settings. Nothing here is written back at runtime.
type Config struct {
	Window    Window `yaml:"window"`
	AssetRoot string `yaml:"asset_root"`
	Shadows   bool   `yaml:"shadows"`
	// GraveSeed seeds grave placement; 0 seeds from the clock.
	GraveSeed     int64   `yaml:"grave_seed"`
	GraveCount    int     `yaml:"grave_count"`
	DampingFactor float32 `yaml:"damping_factor"`
	ShowPanel     bool    `yaml:"show_panel"`
	LoaderWorkers int     `yaml:"loader_workers,omitempty"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Haunted House",
			VSync:  true,
		},
		AssetRoot:     "static",
		Shadows:       true,
		GraveSeed:     0,
		GraveCount:    50,
		DampingFactor: 0.05,
		ShowPanel:     true,
	}
}

// Path returns the config path, honoring HAUNTED_CONFIG.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path over Default(). A missing file yields
// the defaults; an unreadable or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.GraveCount < 0 {
		return fmt.Errorf("grave_count %d must not be negative", c.GraveCount)
	}
	if c.DampingFactor <= 0 || c.DampingFactor > 1 {
		return fmt.Errorf("damping_factor %v must be in (0, 1]", c.DampingFactor)
	}
	return nil
}
