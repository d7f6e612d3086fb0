package biome

import (
	"errors"
	"fmt"
	"math"
)

const (
	// WaterLevel is the height below which a tile is ocean or lake.
	WaterLevel = 0.08
	// ShoreLevel is the height at or below which non-landmass tiles are beach.
	ShoreLevel = 0.25
)

var ErrIncompleteCatalog = errors.New("biome catalog incomplete")

// Classifier assigns catalog entries from height and climate. The returned
// pointers are shared and must not be mutated.
type Classifier struct {
	byType  map[Type]*Biome
	climate []*Biome
	ocean   *Biome
	beach   *Biome
	lake    *Biome
}

// NewClassifier copies the catalog and checks it has the height biomes plus at
// least one climate biome.
func NewClassifier(catalog []Biome) (*Classifier, error) {
	c := &Classifier{byType: make(map[Type]*Biome, len(catalog))}
	for i := range catalog {
		b := catalog[i]
		if _, dup := c.byType[b.Type]; dup {
			return nil, fmt.Errorf("duplicate biome %q", b.Type)
		}
		c.byType[b.Type] = &b
		if !b.HeightOnly {
			c.climate = append(c.climate, &b)
		}
	}

	var missing []error
	for _, t := range []Type{Ocean, Beach, Lake} {
		if _, ok := c.byType[t]; !ok {
			missing = append(missing, fmt.Errorf("%w: missing %q", ErrIncompleteCatalog, t))
		}
	}
	if len(c.climate) == 0 {
		missing = append(missing, fmt.Errorf("%w: no climate biomes", ErrIncompleteCatalog))
	}
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}

	c.ocean, c.beach, c.lake = c.byType[Ocean], c.byType[Beach], c.byType[Lake]
	return c, nil
}

// Classify picks the biome for a tile. Water and beach are decided by height;
// everything else is the climate biome whose range midpoint is nearest.
func (c *Classifier) Classify(height, precipitation, temperature float64, landmass bool) *Biome {
	if height < WaterLevel {
		if landmass {
			return c.lake
		}
		return c.ocean
	}
	if height <= ShoreLevel && !landmass {
		return c.beach
	}

	best := c.climate[0]
	bestDist := math.Inf(1)
	for _, b := range c.climate {
		if d := b.Distance(temperature, precipitation); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// Lookup returns the catalog entry for t.
func (c *Classifier) Lookup(t Type) (*Biome, bool) {
	b, ok := c.byType[t]
	return b, ok
}

// Climate returns the biomes that can be assigned by climate, in catalog order.
func (c *Classifier) Climate() []*Biome {
	out := make([]*Biome, len(c.climate))
	copy(out, c.climate)
	return out
}
