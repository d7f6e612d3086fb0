package noise

import (
	"github.com/aquilax/go-perlin"
)

// Field is the sampling surface terrain generation depends on.
type Field interface {
	Sample(x, y float64) float64
	GetSeed() int64
}

// Generator is a seeded coherent noise field backed by Perlin noise.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a new noise generator with the given seed.
func NewGenerator(seed int64) *Generator {
	// alpha=2, beta=2, n=3 give smooth terrain-like noise
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// GetNoise returns the raw Perlin value for the given coordinates, roughly in [-1, 1].
func (g *Generator) GetNoise(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// Sample returns noise remapped into [0, 1].
func (g *Generator) Sample(x, y float64) float64 {
	v := (g.GetNoise(x, y) + 1) / 2
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// GetSeed returns the current seed
func (g *Generator) GetSeed() int64 {
	return g.seed
}
