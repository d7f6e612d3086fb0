package terrain

import (
	"errors"
	"fmt"

	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/noise"
)

// Params holds every knob of the noise pipeline. Width and Height are the
// map extent the island mask and temperature gradient are computed against.
type Params struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	Seed              int64 `yaml:"seed" json:"seed"`
	HeightSeed        int64 `yaml:"height_seed" json:"height_seed"`
	PrecipitationSeed int64 `yaml:"precipitation_seed" json:"precipitation_seed"`

	// Noise selects the noise backend: "perlin" or "simplex".
	Noise string  `yaml:"noise" json:"noise"`
	Scale float64 `yaml:"scale" json:"scale"`

	HeightOctaves   int     `yaml:"height_octaves" json:"height_octaves"`
	HeightFrequency float64 `yaml:"height_frequency" json:"height_frequency"`
	HeightExp       float64 `yaml:"height_exp" json:"height_exp"`

	PrecipitationOctaves     int     `yaml:"precipitation_octaves" json:"precipitation_octaves"`
	PrecipitationPersistence float64 `yaml:"precipitation_persistence" json:"precipitation_persistence"`
	PrecipitationLacunarity  float64 `yaml:"precipitation_lacunarity" json:"precipitation_lacunarity"`

	// TemperatureMultiplier pushes the poles toward the equator when raised.
	TemperatureMultiplier float64 `yaml:"temperature_multiplier" json:"temperature_multiplier"`
	// TemperatureLoss is subtracted per unit of height.
	TemperatureLoss float64 `yaml:"temperature_loss" json:"temperature_loss"`

	TreeScale float64 `yaml:"tree_scale" json:"tree_scale"`
}

// DefaultParams returns a 256x256 island with moderate detail.
func DefaultParams() Params {
	return Params{
		Width:                    256,
		Height:                   256,
		Seed:                     0,
		HeightSeed:               17,
		PrecipitationSeed:        101,
		Noise:                    noise.BackendPerlin,
		Scale:                    0.35,
		HeightOctaves:            4,
		HeightFrequency:          1.5,
		HeightExp:                1.2,
		PrecipitationOctaves:     3,
		PrecipitationPersistence: 0.5,
		PrecipitationLacunarity:  2.0,
		TemperatureMultiplier:    1.0,
		TemperatureLoss:          0.3,
		TreeScale:                4.0,
	}
}

// Bounds returns the map extent.
func (p Params) Bounds() coord.Bounds {
	return coord.Bounds{Width: p.Width, Height: p.Height}
}

// Validate checks the parameters can drive generation.
func (p Params) Validate() error {
	var errs []error
	if p.Width <= 0 || p.Height <= 0 {
		errs = append(errs, fmt.Errorf("map dimensions must be positive, got %dx%d", p.Width, p.Height))
	}
	if p.Width%coord.ChunkSize != 0 || p.Height%coord.ChunkSize != 0 {
		errs = append(errs, fmt.Errorf("map dimensions must be multiples of %d, got %dx%d", coord.ChunkSize, p.Width, p.Height))
	}
	if p.HeightOctaves < 1 {
		errs = append(errs, fmt.Errorf("height_octaves must be at least 1, got %d", p.HeightOctaves))
	}
	if p.PrecipitationOctaves < 1 {
		errs = append(errs, fmt.Errorf("precipitation_octaves must be at least 1, got %d", p.PrecipitationOctaves))
	}
	if p.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", p.Scale))
	}
	switch p.Noise {
	case "", noise.BackendPerlin, noise.BackendSimplex:
	default:
		errs = append(errs, fmt.Errorf("noise must be %q or %q, got %q", noise.BackendPerlin, noise.BackendSimplex, p.Noise))
	}
	if p.HeightFrequency <= 0 {
		errs = append(errs, fmt.Errorf("height_frequency must be positive, got %g", p.HeightFrequency))
	}
	return errors.Join(errs...)
}
