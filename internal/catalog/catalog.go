// Quality preset and resolution target catalogs consumed by the pipeline
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfiguration reports a preset or resolution tuple outside the
// numerically valid range, or a lookup for a name the catalog does not carry.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// baseDPI is the 72-dpi web baseline all scale factors are relative to.
const baseDPI = 72

// Resolution is an output resolution target. DPI is a scale-factor proxy
// against the 72-dpi baseline, not real print metadata.
type Resolution struct {
	Name        string `toml:"name"`
	DPI         uint   `toml:"dpi"`
	Description string `toml:"description"`
}

// ScaleFactor returns the resampling factor for this target.
func (r Resolution) ScaleFactor() float64 {
	return float64(r.DPI) / baseDPI
}

// Validate checks the resolution tuple.
func (r Resolution) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: resolution with empty name", ErrInvalidConfiguration)
	}
	if r.DPI == 0 {
		return fmt.Errorf("%w: resolution %q has zero dpi", ErrInvalidConfiguration, r.Name)
	}
	return nil
}

// Settings is one immutable enhancement tuple. Brightness and contrast are
// multipliers around 1.0; sharpness below or equal to 1 disables sharpening;
// deblur and denoise are strengths where 0 disables the stage.
type Settings struct {
	Brightness float32 `toml:"brightness"`
	Contrast   float32 `toml:"contrast"`
	Sharpness  float32 `toml:"sharpness"`
	Deblur     float32 `toml:"deblur"`
	Denoise    float32 `toml:"denoise"`
}

// Validate checks the settings tuple. Any numerically valid tuple is
// accepted; the built-in presets are defaults, not the only legal values.
func (s Settings) Validate() error {
	for _, f := range []struct {
		name  string
		value float32
	}{
		{"brightness", s.Brightness},
		{"contrast", s.Contrast},
		{"sharpness", s.Sharpness},
		{"deblur", s.Deblur},
		{"denoise", s.Denoise},
	} {
		v := float64(f.value)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidConfiguration, f.name, f.value)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfiguration, f.name, f.value)
		}
	}
	if s.Brightness <= 0 {
		return fmt.Errorf("%w: brightness must be positive, got %v", ErrInvalidConfiguration, s.Brightness)
	}
	if s.Contrast <= 0 {
		return fmt.Errorf("%w: contrast must be positive, got %v", ErrInvalidConfiguration, s.Contrast)
	}
	return nil
}

// Preset is a named settings tuple.
type Preset struct {
	Name string `toml:"name"`
	Settings
}

// Built-in catalogs. These mirror the product's four quality presets and four
// resolution targets; LoadFile can extend or override them.
func builtinPresets() []Preset {
	return []Preset{
		{Name: "Balanced", Settings: Settings{Brightness: 1.00, Contrast: 1.00, Sharpness: 1.1, Deblur: 0.5, Denoise: 0.3}},
		{Name: "Clarity", Settings: Settings{Brightness: 1.05, Contrast: 1.10, Sharpness: 1.4, Deblur: 0.8, Denoise: 0.4}},
		{Name: "HDR", Settings: Settings{Brightness: 1.15, Contrast: 1.30, Sharpness: 1.2, Deblur: 0.6, Denoise: 0.5}},
		{Name: "AI Enhance", Settings: Settings{Brightness: 1.10, Contrast: 1.20, Sharpness: 1.5, Deblur: 1.0, Denoise: 0.7}},
	}
}

func builtinResolutions() []Resolution {
	return []Resolution{
		{Name: "Standard Web", DPI: 72, Description: "Screen resolution for web use"},
		{Name: "Medium Quality", DPI: 150, Description: "Good quality for documents"},
		{Name: "Print Quality", DPI: 300, Description: "Standard print resolution"},
		{Name: "High-Res Print", DPI: 600, Description: "Professional print quality"},
	}
}

// Catalog holds the preset and resolution tables the caller selects from.
type Catalog struct {
	presets     []Preset
	resolutions []Resolution
}

// Default returns a catalog with the built-in presets and resolutions.
func Default() *Catalog {
	return &Catalog{
		presets:     builtinPresets(),
		resolutions: builtinResolutions(),
	}
}

// Presets returns a copy of the preset table.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Resolutions returns a copy of the resolution table.
func (c *Catalog) Resolutions() []Resolution {
	out := make([]Resolution, len(c.resolutions))
	copy(out, c.resolutions)
	return out
}

// Preset looks up a preset by name, case-insensitively.
func (c *Catalog) Preset(name string) (Preset, error) {
	for _, p := range c.presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfiguration, name)
}

// Resolution looks up a resolution target by name, case-insensitively.
func (c *Catalog) Resolution(name string) (Resolution, error) {
	for _, r := range c.resolutions {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return Resolution{}, fmt.Errorf("%w: unknown resolution %q", ErrInvalidConfiguration, name)
}

// addPreset appends or, on a name match, replaces a preset.
func (c *Catalog) addPreset(p Preset) {
	for i, existing := range c.presets {
		if strings.EqualFold(existing.Name, p.Name) {
			c.presets[i] = p
			return
		}
	}
	c.presets = append(c.presets, p)
}

func (c *Catalog) addResolution(r Resolution) {
	for i, existing := range c.resolutions {
		if strings.EqualFold(existing.Name, r.Name) {
			c.resolutions[i] = r
			return
		}
	}
	c.resolutions = append(c.resolutions, r)
}
