package noise

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// Backend names a noise implementation.
const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
)

// Simplex is a seeded OpenSimplex field.
type Simplex struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplex creates an OpenSimplex field already normalised to [0, 1].
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.NewNormalized(seed), seed: seed}
}

func (s *Simplex) Sample(x, y float64) float64 {
	v := s.noise.Eval2(x, y)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (s *Simplex) GetSeed() int64 {
	return s.seed
}

// New returns a field of the named backend. An empty name selects Perlin.
func New(backend string, seed int64) (Field, error) {
	switch backend {
	case BackendPerlin, "":
		return NewGenerator(seed), nil
	case BackendSimplex:
		return NewSimplex(seed), nil
	}
	return nil, fmt.Errorf("unknown noise backend %q", backend)
}
