package terrain

import (
	"fmt"
	"math"
	"time"

	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/logging"
	"github.com/VoidMesh/tileworld/internal/noise"
)

const (
	// treeThreshold is the tree-channel sample above which a tile gets a tree.
	treeThreshold = 0.8

	lowlandMin  = 0.25
	highlandMin = 0.7
)

// Cell is the raw per-tile output of the noise pass.
type Cell struct {
	Height        float64
	Precipitation float64
	Temperature   float64
	Landmass      bool
	ZIndex        int
	TreeValue     float64
}

// Chunk holds the noise pass output for one 32x32 chunk, indexed [x][y].
type Chunk struct {
	Key   coord.Coord
	Cells [coord.ChunkSize][coord.ChunkSize]Cell
	Trees [coord.ChunkSize][coord.ChunkSize]bool
}

// Cell returns the cell at a chunk-relative position.
func (c *Chunk) Cell(rel coord.Coord) *Cell {
	return &c.Cells[rel.X][rel.Y]
}

// Generator produces the height, precipitation and temperature maps of a
// chunk. It is safe for concurrent use: fields are read-only after
// construction.
type Generator struct {
	params        Params
	height        noise.Field
	precipitation noise.Field
	trees         noise.Field
}

// NewGenerator builds one noise field per channel from the params' seeds.
func NewGenerator(params Params) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid terrain params: %w", err)
	}
	// Validate has checked the backend name, so New cannot fail here.
	height, _ := noise.New(params.Noise, params.Seed+params.HeightSeed)
	precipitation, _ := noise.New(params.Noise, params.Seed+params.PrecipitationSeed)
	trees, _ := noise.New(params.Noise, params.Seed)
	return NewGeneratorWithFields(params, height, precipitation, trees), nil
}

// NewGeneratorWithFields wires explicit fields, letting tests pin noise values.
func NewGeneratorWithFields(params Params, height, precipitation, trees noise.Field) *Generator {
	return &Generator{
		params:        params,
		height:        height,
		precipitation: precipitation,
		trees:         trees,
	}
}

// Params returns the parameters the generator was built with.
func (g *Generator) Params() Params {
	return g.params
}

// GenerateChunk runs the noise pass for the chunk whose bottom-left tile is key.
func (g *Generator) GenerateChunk(key coord.Coord) *Chunk {
	logger := logging.WithChunkCoords(key.X, key.Y)
	start := time.Now()

	chunk := &Chunk{Key: key}
	landTiles := 0
	for x := 0; x < coord.ChunkSize; x++ {
		for y := 0; y < coord.ChunkSize; y++ {
			wx, wy := key.X+x, key.Y+y
			cell := &chunk.Cells[x][y]

			elevation, landmass := g.elevation(wx, wy)
			cell.Landmass = landmass
			cell.Height = redistribute(elevation, g.params.HeightExp)
			cell.ZIndex = ZIndex(elevation)
			cell.Precipitation = g.precipitationAt(wx, wy)
			cell.Temperature = Temperature(wy, g.params.Height, cell.Height, g.params.TemperatureMultiplier, g.params.TemperatureLoss)

			cell.TreeValue = g.trees.Sample(
				float64(wx)/coord.ChunkSize*g.params.TreeScale,
				float64(wy)/coord.ChunkSize*g.params.TreeScale,
			)
			chunk.Trees[x][y] = cell.TreeValue > treeThreshold

			if landmass {
				landTiles++
			}
		}
	}

	logger.Debug("Noise pass completed", "duration", time.Since(start), "land_tiles", landTiles)
	return chunk
}

// elevation sums island-masked octaves. Frequency is squared every octave and
// bumped to 2 when it lands on 1, which would otherwise repeat forever.
func (g *Generator) elevation(wx, wy int) (float64, bool) {
	amplitude := 1.0
	amplitudeSum := 0.0
	frequency := g.params.HeightFrequency
	sum := 0.0
	landmass := false

	px := float64(wx) / coord.ChunkSize * g.params.Scale
	py := float64(wy) / coord.ChunkSize * g.params.Scale
	for i := 0; i < g.params.HeightOctaves; i++ {
		sample := g.height.Sample(px*frequency, py*frequency)

		var masked float64
		masked, landmass = IslandMask(g.params.Width, g.params.Height, wx, wy, sample)
		sum += masked * amplitude

		frequency *= frequency
		if frequency == 1 {
			frequency = 2
		}
		amplitudeSum += amplitude
		amplitude /= 2
	}
	return sum / amplitudeSum, landmass
}

func (g *Generator) precipitationAt(wx, wy int) float64 {
	amplitude := 1.0
	amplitudeSum := 0.0
	frequency := 1.0
	sum := 0.0

	px := float64(wx) / coord.ChunkSize * g.params.Scale
	py := float64(wy) / coord.ChunkSize * g.params.Scale
	for i := 0; i < g.params.PrecipitationOctaves; i++ {
		sum += g.precipitation.Sample(px*frequency, py*frequency) * amplitude
		amplitudeSum += amplitude
		amplitude *= g.params.PrecipitationPersistence
		frequency *= g.params.PrecipitationLacunarity
	}
	if amplitudeSum == 0 {
		return 0
	}
	return sum / amplitudeSum
}

// redistribute raises elevation to exp. Negative bases with fractional
// exponents yield NaN; those fall back to the absolute value.
func redistribute(elevation, exp float64) float64 {
	h := math.Pow(elevation, exp)
	if math.IsNaN(h) {
		h = math.Pow(math.Abs(elevation), exp)
	}
	return h
}

// ZIndex discretises an elevation into water (0), lowland (1) or highland (2).
func ZIndex(elevation float64) int {
	switch {
	case elevation > lowlandMin && elevation < highlandMin:
		return 1
	case elevation > highlandMin && elevation < 1:
		return 2
	default:
		return 0
	}
}

// Temperature is hottest on the horizontal midline and at sea level.
func Temperature(y, mapHeight int, height, multiplier, loss float64) float64 {
	equator := mapHeight / 2
	latitude := y - equator
	if latitude < 0 {
		latitude = -latitude
	}
	raw := float64(latitude)/(float64(mapHeight)/2)*multiplier - height*loss
	return clamp01(1 - raw)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
