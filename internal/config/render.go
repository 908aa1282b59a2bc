package config

import (
	"fmt"
	"os"
	"regexp"

	sigsyaml "sigs.k8s.io/yaml"
)

// RenderConfig holds chart rendering overrides loaded from the "render"
// section of the config file (.survivorpie.yaml).
type RenderConfig struct {
	// Width is the image width in pixels.
	Width int `json:"width,omitempty"`

	// Height is the image height in pixels.
	Height int `json:"height,omitempty"`

	// Title is drawn above the chart.
	Title string `json:"title,omitempty"`

	// Colors maps slice labels ("Survived", "Died") to hex colors.
	Colors map[string]string `json:"colors,omitempty"`
}

// ParseRenderConfig parses the render section from raw config file bytes.
func ParseRenderConfig(data []byte) (*RenderConfig, error) {
	var raw struct {
		Render RenderConfig `json:"render,omitempty"`
	}

	if err := sigsyaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing render config: %w", err)
	}

	cfg := raw.Render

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadRenderConfig reads the render section of the config file at path.
// An empty path yields an empty RenderConfig.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	if path == "" {
		return &RenderConfig{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is the resolved config file
	if err != nil {
		return nil, fmt.Errorf("reading render config: %w", err)
	}

	return ParseRenderConfig(data)
}

// hexColorPattern accepts #rgb and #rrggbb.
var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// maxDimension caps image sizes to keep renders bounded.
const maxDimension = 8192

// Validate checks the render config for correctness.
func (c *RenderConfig) Validate() error {
	if c.Width < 0 || c.Width > maxDimension {
		return fmt.Errorf("render.width: %d out of range (0-%d)", c.Width, maxDimension)
	}

	if c.Height < 0 || c.Height > maxDimension {
		return fmt.Errorf("render.height: %d out of range (0-%d)", c.Height, maxDimension)
	}

	for label, color := range c.Colors {
		if label != "Survived" && label != "Died" {
			return fmt.Errorf("render.colors[%s]: unknown slice (must be Survived or Died)", label)
		}

		if !hexColorPattern.MatchString(color) {
			return fmt.Errorf("render.colors[%s]: value %q is invalid (must match %s)", label, color, hexColorPattern.String())
		}
	}

	return nil
}

// IsEmpty returns true if the config has no overrides.
func (c *RenderConfig) IsEmpty() bool {
	return c.Width == 0 && c.Height == 0 && c.Title == "" && len(c.Colors) == 0
}
