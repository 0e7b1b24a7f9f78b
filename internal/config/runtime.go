package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig holds user overrides loaded from an optional YAML file.
// Zero values mean "use the compiled-in default"; the Get* accessors resolve them.
type RuntimeConfig struct {
	Bins             string   `yaml:"bins"`
	Extensions       []string `yaml:"extensions"`
	SortBy           string   `yaml:"sort_by"`
	PlotFile         string   `yaml:"plot_file"`
	CSVFile          string   `yaml:"csv_file"`
	RedColor         string   `yaml:"red_color"`
	GreenColor       string   `yaml:"green_color"`
	BlueColor        string   `yaml:"blue_color"`
	TextColor        string   `yaml:"text_color"`
	ChartWidth       int      `yaml:"chart_width"`
	ChartPanelHeight int      `yaml:"chart_height"`
}

// LoadFile reads a YAML runtime config. An empty path yields an empty config.
func LoadFile(path string) (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// normalize lowercases extensions and guarantees the leading dot
func (c *RuntimeConfig) normalize() {
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	c.SortBy = strings.ToLower(strings.TrimSpace(c.SortBy))
}

// Validate checks fields that cannot silently fall back to a default
func (c *RuntimeConfig) Validate() error {
	if c.SortBy != "" && !slices.Contains(Channels, c.SortBy) {
		return fmt.Errorf("sort_by must be one of %v, got %q", Channels, c.SortBy)
	}

	colors := map[string]string{
		"red_color":   c.RedColor,
		"green_color": c.GreenColor,
		"blue_color":  c.BlueColor,
		"text_color":  c.TextColor,
	}
	for key, value := range colors {
		if value == "" {
			continue
		}
		if _, _, _, err := ParseHexColor(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if c.ChartWidth < 0 || c.ChartPanelHeight < 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	return nil
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB" into its components
func ParseHexColor(s string) (uint8, uint8, uint8, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("hex colour must have 6 digits, got %q", s)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return b[0], b[1], b[2], nil
}

// resolveColor returns the parsed override, or the default if unset or invalid
func resolveColor(value string, r, g, b uint8) (uint8, uint8, uint8) {
	if value == "" {
		return r, g, b
	}
	cr, cg, cb, err := ParseHexColor(value)
	if err != nil {
		return r, g, b
	}
	return cr, cg, cb
}

// GetChannelColor returns the bar colour for "r", "g" or "b"
func (c *RuntimeConfig) GetChannelColor(channel string) (uint8, uint8, uint8) {
	switch channel {
	case "r":
		return resolveColor(c.RedColor, RedColorR, RedColorG, RedColorB)
	case "g":
		return resolveColor(c.GreenColor, GreenColorR, GreenColorG, GreenColorB)
	case "b":
		return resolveColor(c.BlueColor, BlueColorR, BlueColorG, BlueColorB)
	}
	return TextColorR, TextColorG, TextColorB
}

// GetTextColor returns the chart title colour
func (c *RuntimeConfig) GetTextColor() (uint8, uint8, uint8) {
	return resolveColor(c.TextColor, TextColorR, TextColorG, TextColorB)
}

// GetBinsString returns the boundary string, defaulting to DefaultBinsString
func (c *RuntimeConfig) GetBinsString() string {
	if strings.TrimSpace(c.Bins) == "" {
		return DefaultBinsString
	}
	return c.Bins
}

// GetExtensions returns the supported image extensions
func (c *RuntimeConfig) GetExtensions() []string {
	if len(c.Extensions) == 0 {
		return SupportedExtensions()
	}
	return c.Extensions
}

// GetSortChannel returns the channel used to order the output table
func (c *RuntimeConfig) GetSortChannel() string {
	if c.SortBy == "" {
		return DefaultSortChannel
	}
	return c.SortBy
}

// GetPlotFile returns the histogram image file name
func (c *RuntimeConfig) GetPlotFile() string {
	if c.PlotFile == "" {
		return PlotFileName
	}
	return c.PlotFile
}

// GetCSVFile returns the output table file name
func (c *RuntimeConfig) GetCSVFile() string {
	if c.CSVFile == "" {
		return CSVFileName
	}
	return c.CSVFile
}

// GetChartWidth returns the histogram image width
func (c *RuntimeConfig) GetChartWidth() int {
	if c.ChartWidth <= 0 {
		return ChartWidth
	}
	return c.ChartWidth
}

// GetChartPanelHeight returns the height of a single channel panel
func (c *RuntimeConfig) GetChartPanelHeight() int {
	if c.ChartPanelHeight <= 0 {
		return ChartPanelHeight
	}
	return c.ChartPanelHeight
}
