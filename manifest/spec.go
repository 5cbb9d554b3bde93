package manifest

import (
	"fmt"

	"github.com/ThimoteB/Potich-Adventures/tileset"
	"gopkg.in/yaml.v3"
)

// Spec lists the tilesets to load and the simulation rate that drives their
// animations.
type Spec struct {
	TickRate int           `yaml:"tick_rate"`
	Tilesets []TilesetSpec `yaml:"tilesets"`
}

type TilesetSpec struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Required bool   `yaml:"required"`
}

// Clock returns the animation clock for the manifest's tick rate.
func (s *Spec) Clock() tileset.Clock {
	return tileset.Clock{TickRate: s.TickRate}
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("manifest: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("manifest: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTilesetsSpec loads and validates a tileset manifest by name.
func LoadTilesetsSpec(filename string) (*Spec, error) {
	spec, err := LoadSpec[Spec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseSpec decodes and validates manifest bytes.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("manifest: unmarshal: %w", err)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &spec, nil
}

func (s *Spec) validate() error {
	if s.TickRate < 0 {
		return fmt.Errorf("tick_rate must not be negative, got %d", s.TickRate)
	}
	if s.TickRate == 0 {
		s.TickRate = tileset.DefaultTickRate
	}
	seen := make(map[string]bool, len(s.Tilesets))
	for i, ts := range s.Tilesets {
		if ts.Name == "" || ts.Path == "" {
			return fmt.Errorf("tilesets[%d]: name and path are required", i)
		}
		if seen[ts.Name] {
			return fmt.Errorf("tilesets[%d]: duplicate name %q", i, ts.Name)
		}
		seen[ts.Name] = true
	}
	return nil
}
