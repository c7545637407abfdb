package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

// RuntimeConfig holds user overrides loaded from a YAML file. Zero values and
// nil colour components mean "use the compiled-in default".
type RuntimeConfig struct {
	MaxOrder   int    `json:"maxOrder,omitempty"`
	Curve      string `json:"curve,omitempty"`
	Background string `json:"background,omitempty"`
	TextColor  string `json:"textColor,omitempty"`
	ImageScale int    `json:"imageScale,omitempty"`
	Caption    bool   `json:"caption,omitempty"`
	Workers    int    `json:"workers,omitempty"`
	CacheSize  int    `json:"cacheSize,omitempty"`
	OutputDir  string `json:"outputDir,omitempty"`

	// Parsed from Background and TextColor by Load
	BackgroundColorR *uint8 `json:"-"`
	BackgroundColorG *uint8 `json:"-"`
	BackgroundColorB *uint8 `json:"-"`
	TextColorR       *uint8 `json:"-"`
	TextColorG       *uint8 `json:"-"`
	TextColorB       *uint8 `json:"-"`
}

// Load reads a YAML config file. An empty path returns an empty config.
func Load(path string) (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	if cfg.Background != "" {
		r, g, b, err := ParseHexColor(cfg.Background)
		if err != nil {
			return nil, fmt.Errorf("%w: background: %v", ErrInvalid, err)
		}
		cfg.BackgroundColorR, cfg.BackgroundColorG, cfg.BackgroundColorB = &r, &g, &b
	}
	if cfg.TextColor != "" {
		r, g, b, err := ParseHexColor(cfg.TextColor)
		if err != nil {
			return nil, fmt.Errorf("%w: textColor: %v", ErrInvalid, err)
		}
		cfg.TextColorR, cfg.TextColorG, cfg.TextColorB = &r, &g, &b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values outside the supported ranges.
func (c *RuntimeConfig) Validate() error {
	if c.MaxOrder < 0 || c.MaxOrder > MaxOrderLimit {
		return fmt.Errorf("%w: maxOrder %d (must be 1-%d)", ErrInvalid, c.MaxOrder, MaxOrderLimit)
	}
	switch c.Curve {
	case "", "log", "mean":
	default:
		return fmt.Errorf("%w: unknown curve %q (must be log or mean)", ErrInvalid, c.Curve)
	}
	if c.ImageScale < 0 || c.ImageScale > MaxImageScale {
		return fmt.Errorf("%w: imageScale %d (must be 1-%d)", ErrInvalid, c.ImageScale, MaxImageScale)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cacheSize %d", ErrInvalid, c.CacheSize)
	}
	return nil
}

// GetMaxOrder returns the configured max n-gram order or DefaultMaxOrder.
func (c *RuntimeConfig) GetMaxOrder() int {
	if c.MaxOrder > 0 {
		return c.MaxOrder
	}
	return DefaultMaxOrder
}

func (c *RuntimeConfig) GetCurve() string {
	if c.Curve != "" {
		return c.Curve
	}
	return DefaultCurve
}

// GetBackgroundColor returns the override only when all three components are set.
func (c *RuntimeConfig) GetBackgroundColor() (uint8, uint8, uint8) {
	if c.BackgroundColorR != nil && c.BackgroundColorG != nil && c.BackgroundColorB != nil {
		return *c.BackgroundColorR, *c.BackgroundColorG, *c.BackgroundColorB
	}
	return BackgroundColorR, BackgroundColorG, BackgroundColorB
}

// GetTextColor returns the override only when all three components are set.
func (c *RuntimeConfig) GetTextColor() (uint8, uint8, uint8) {
	if c.TextColorR != nil && c.TextColorG != nil && c.TextColorB != nil {
		return *c.TextColorR, *c.TextColorG, *c.TextColorB
	}
	return TextColorR, TextColorG, TextColorB
}

func (c *RuntimeConfig) GetImageScale() int {
	if c.ImageScale > 0 {
		return c.ImageScale
	}
	return DefaultImageScale
}

// GetWorkers defaults to one worker per available CPU.
func (c *RuntimeConfig) GetWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *RuntimeConfig) GetCacheSize() int {
	if c.CacheSize > 0 {
		return c.CacheSize
	}
	return DefaultCacheSize
}

func (c *RuntimeConfig) GetOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return DefaultOutputDir
}

// ParseHexColor parses "RRGGBB" or "#RRGGBB" into its components.
func ParseHexColor(s string) (uint8, uint8, uint8, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("hex colour %q must have 6 digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("hex colour %q: %w", s, err)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
