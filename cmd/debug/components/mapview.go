package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/world"
)

// Layer selects what a map cell shows.
type Layer int

const (
	LayerBiome Layer = iota
	LayerHeight
	LayerHill
)

// ParseLayer maps a flag value to a Layer.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(s) {
	case "biome", "":
		return LayerBiome, nil
	case "height":
		return LayerHeight, nil
	case "hill":
		return LayerHill, nil
	}
	return 0, fmt.Errorf("unknown layer %q (want biome, height or hill)", s)
}

// MapView renders a window of a generated map. Rows are printed top down, so
// the highest y comes first.
type MapView struct {
	Tiles  *world.Store
	Origin coord.Coord
	Width  int
	Height int
	Layer  Layer
	Path   []coord.Coord
}

// Render draws the window with a legend underneath.
func (v MapView) Render() string {
	path := make(map[coord.Coord]bool, len(v.Path))
	for _, c := range v.Path {
		path[c] = true
	}
	chests := v.chests()
	seen := map[biome.Type]bool{}

	var rows []string
	for y := v.Origin.Y + v.Height - 1; y >= v.Origin.Y; y-- {
		var row strings.Builder
		for x := v.Origin.X; x < v.Origin.X+v.Width; x++ {
			c := coord.Coord{X: x, Y: y}
			t, ok := v.Tiles.TileAt(c)
			if !ok {
				row.WriteString(GridCellStyle.Render(UnknownSymbol))
				continue
			}
			seen[t.BiomeType()] = true
			row.WriteString(v.cell(t, path[c], chests[c]))
		}
		rows = append(rows, row.String())
	}

	grid := BorderStyle.Render(strings.Join(rows, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, grid, v.legend(seen))
}

func (v MapView) cell(t *world.Tile, onPath, chest bool) string {
	bg := GridCellStyle.Background(GetBiomeColor(t.BiomeType()))
	switch {
	case onPath:
		return PathCellStyle.Background(GetBiomeColor(t.BiomeType())).Render(PathSymbol)
	case chest:
		return ObjectCellStyle.Background(GetBiomeColor(t.BiomeType())).Render(ChestSymbol)
	}

	switch v.Layer {
	case LayerHeight:
		return bg.Render(GetHeightSymbol(t.ZIndex))
	case LayerHill:
		return bg.Render(GetHillSymbol(t.HillEdge))
	default:
		if t.BiomeType() == biome.Ocean || t.BiomeType() == biome.Lake {
			return bg.Render(WaterSymbol)
		}
		return bg.Render(LandSymbol)
	}
}

// chests collects key object positions inside the window.
func (v MapView) chests() map[coord.Coord]bool {
	out := map[coord.Coord]bool{}
	for _, key := range v.Tiles.ChunkKeys() {
		data, err := v.Tiles.ExportChunk(key)
		if err != nil {
			continue
		}
		for _, obj := range data.Objects {
			if obj.Sprite != world.ChestSprite {
				continue
			}
			out[coord.WorldPos(coord.Coord{X: obj.RelX, Y: obj.RelY}, key)] = true
		}
	}
	return out
}

func (v MapView) legend(seen map[biome.Type]bool) string {
	types := make([]string, 0, len(seen))
	for t := range seen {
		if t != "" {
			types = append(types, string(t))
		}
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types)+2)
	for _, t := range types {
		swatch := GridCellStyle.Background(GetBiomeColor(biome.Type(t))).Render(LandSymbol)
		parts = append(parts, swatch+" "+t)
	}
	parts = append(parts, PathSymbol+" path", ChestSymbol+" chest")
	return HelpStyle.Render(strings.Join(parts, "  "))
}
