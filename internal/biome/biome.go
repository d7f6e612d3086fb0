package biome

// Type names a biome.
type Type string

const (
	Ocean      Type = "ocean"
	Beach      Type = "beach"
	Lake       Type = "lake"
	Ashland    Type = "ashland"
	Forest     Type = "forest"
	Desert     Type = "desert"
	Rainforest Type = "rainforest"
	Grassland  Type = "grassland"
)

// Biome is an immutable catalog entry. Climate ranges are half-open [min, max).
type Biome struct {
	Type             Type     `yaml:"type" json:"type"`
	MinTemperature   float64  `yaml:"min_temperature" json:"min_temperature"`
	MaxTemperature   float64  `yaml:"max_temperature" json:"max_temperature"`
	MinPrecipitation float64  `yaml:"min_precipitation" json:"min_precipitation"`
	MaxPrecipitation float64  `yaml:"max_precipitation" json:"max_precipitation"`
	// HeightOnly biomes are assigned by the height rules and never by climate.
	HeightOnly bool     `yaml:"height_only" json:"height_only"`
	Walkable   bool     `yaml:"walkable" json:"walkable"`
	Trees      []string `yaml:"trees,omitempty" json:"trees,omitempty"`
}

// Matches reports whether the climate falls inside the biome's ranges.
func (b *Biome) Matches(temperature, precipitation float64) bool {
	return temperature >= b.MinTemperature && temperature < b.MaxTemperature &&
		precipitation >= b.MinPrecipitation && precipitation < b.MaxPrecipitation
}

// Distance is the squared distance in climate space from the range midpoint.
func (b *Biome) Distance(temperature, precipitation float64) float64 {
	dt := temperature - (b.MinTemperature+b.MaxTemperature)/2
	dp := precipitation - (b.MinPrecipitation+b.MaxPrecipitation)/2
	return dt*dt + dp*dp
}

// DefaultCatalog returns the stock biome set.
func DefaultCatalog() []Biome {
	return []Biome{
		{Type: Ocean, MaxTemperature: 1, MaxPrecipitation: 1, HeightOnly: true},
		{Type: Beach, MaxTemperature: 1, MaxPrecipitation: 1, HeightOnly: true, Walkable: true, Trees: []string{"palm"}},
		{Type: Lake, MaxTemperature: 1, MaxPrecipitation: 1, HeightOnly: true},
		{
			Type:           Ashland,
			MinTemperature: 0, MaxTemperature: 0.25,
			MinPrecipitation: 0, MaxPrecipitation: 1,
			Walkable: true,
			Trees:    []string{"dead_tree", "burnt_stump"},
		},
		{
			Type:           Grassland,
			MinTemperature: 0.25, MaxTemperature: 0.6,
			MinPrecipitation: 0, MaxPrecipitation: 0.4,
			Walkable: true,
			Trees:    []string{"oak"},
		},
		{
			Type:           Forest,
			MinTemperature: 0.25, MaxTemperature: 0.6,
			MinPrecipitation: 0.4, MaxPrecipitation: 1,
			Walkable: true,
			Trees:    []string{"oak", "pine", "birch"},
		},
		{
			Type:           Desert,
			MinTemperature: 0.6, MaxTemperature: 1,
			MinPrecipitation: 0, MaxPrecipitation: 0.33,
			Walkable: true,
			Trees:    []string{"cactus"},
		},
		{
			Type:           Rainforest,
			MinTemperature: 0.6, MaxTemperature: 1,
			MinPrecipitation: 0.33, MaxPrecipitation: 1,
			Walkable: true,
			Trees:    []string{"jungle", "palm"},
		},
	}
}
