package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// catalogFile is the on-disk TOML shape:
//
//	[[preset]]
//	name = "Archive Scan"
//	brightness = 1.08
//	contrast = 1.15
//	sharpness = 1.3
//	deblur = 0.9
//	denoise = 0.6
//
//	[[resolution]]
//	name = "Poster"
//	dpi = 1200
//	description = "Large-format print"
type catalogFile struct {
	Presets     []Preset     `toml:"preset"`
	Resolutions []Resolution `toml:"resolution"`
}

// LoadFile merges presets and resolutions from a TOML file into the catalog.
// Entries with a name already present replace the built-in; new names are
// appended. Every loaded tuple is validated before the catalog is touched.
func (c *Catalog) LoadFile(path string) error {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	for _, p := range file.Presets {
		if p.Name == "" {
			return fmt.Errorf("%w: preset with empty name in %s", ErrInvalidConfiguration, path)
		}
		if err := p.Settings.Validate(); err != nil {
			return fmt.Errorf("preset %q in %s: %w", p.Name, path, err)
		}
	}
	for _, r := range file.Resolutions {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("resolution %q in %s: %w", r.Name, path, err)
		}
	}

	for _, p := range file.Presets {
		c.addPreset(p)
	}
	for _, r := range file.Resolutions {
		c.addResolution(r)
	}
	return nil
}
