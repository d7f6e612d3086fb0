package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/terrain"
)

// Generation is the YAML generation file. Fields left out of the file keep
// their defaults; a biomes list replaces the default catalog entirely.
type Generation struct {
	Terrain terrain.Params `yaml:"terrain"`
	Biomes  []biome.Biome  `yaml:"biomes"`
}

// DefaultGeneration returns the stock terrain params and biome catalog.
func DefaultGeneration() *Generation {
	return &Generation{
		Terrain: terrain.DefaultParams(),
		Biomes:  biome.DefaultCatalog(),
	}
}

// LoadGeneration reads a generation file. An empty path yields the defaults.
func LoadGeneration(path string) (*Generation, error) {
	gen := DefaultGeneration()
	if path == "" {
		return gen, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read generation config: %w", err)
	}
	if err := yaml.Unmarshal(data, gen); err != nil {
		return nil, fmt.Errorf("parse generation config: %w", err)
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return gen, nil
}

// Validate checks the terrain params and the biome catalog.
func (g *Generation) Validate() error {
	if err := g.Terrain.Validate(); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	if _, err := biome.NewClassifier(g.Biomes); err != nil {
		return fmt.Errorf("biomes: %w", err)
	}
	return nil
}

// Classifier builds the classifier for the configured catalog.
func (g *Generation) Classifier() (*biome.Classifier, error) {
	return biome.NewClassifier(g.Biomes)
}
