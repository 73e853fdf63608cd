// Package config loads the editor configuration: window layout, zoom
// constants and the styles of the two shape kinds.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/milk9111/macho/scene"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Window     WindowSpec   `yaml:"window"`
	Viewport   ViewportSpec `yaml:"viewport"`
	Namespace  ShapeSpec    `yaml:"namespace"`
	Definition ShapeSpec    `yaml:"definition"`
}

// WindowSpec sizes the window. The canvas gets the window minus PanelWidth
// on the left and BottomMargin at the bottom.
type WindowSpec struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	PanelWidth   int    `yaml:"panel_width"`
	BottomMargin int    `yaml:"bottom_margin"`
}

type ViewportSpec struct {
	ZoomFactor       float64 `yaml:"zoom_factor"`
	ZoomOutReduction float64 `yaml:"zoom_out_reduction"`
}

// ShapeSpec describes a shape kind. X and Y are only used for namespaces,
// which are created at a fixed content position.
type ShapeSpec struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Radius      float64 `yaml:"radius"`
	Fill        string  `yaml:"fill"`
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Draggable   bool    `yaml:"draggable"`
}

// Style converts the spec into a scene style.
func (s ShapeSpec) Style() (scene.Style, error) {
	fill, err := ParseColor(s.Fill)
	if err != nil {
		return scene.Style{}, fmt.Errorf("fill: %w", err)
	}
	stroke, err := ParseColor(s.Stroke)
	if err != nil {
		return scene.Style{}, fmt.Errorf("stroke: %w", err)
	}
	return scene.Style{
		Radius:      s.Radius,
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: s.StrokeWidth,
		Draggable:   s.Draggable,
	}, nil
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic("config: embedded default.yaml: " + err.Error())
	}
	return cfg
}

// Load reads path and overlays it on the embedded defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a full configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Viewport.ZoomFactor <= 0 {
		return fmt.Errorf("viewport.zoom_factor must be positive")
	}
	if c.Viewport.ZoomFactor-c.Viewport.ZoomOutReduction <= 0 {
		return fmt.Errorf("viewport.zoom_out_reduction must be smaller than zoom_factor")
	}
	if c.Window.PanelWidth < 0 || c.Window.BottomMargin < 0 {
		return fmt.Errorf("window margins must not be negative")
	}
	for name, spec := range map[string]ShapeSpec{"namespace": c.Namespace, "definition": c.Definition} {
		if spec.Radius <= 0 {
			return fmt.Errorf("%s.radius must be positive", name)
		}
		if spec.StrokeWidth < 0 {
			return fmt.Errorf("%s.stroke_width must not be negative", name)
		}
		if _, err := spec.Style(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ParseColor accepts "#rrggbb", "#rgb" or an SVG colour name such as
// "black".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty colour")
	}
	if s[0] != '#' {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
