// Package coord holds world tile coordinates and the chunk partitioning
// arithmetic shared by generation, classification and pathfinding.
package coord

import "fmt"

// ChunkSize is the edge length of a square chunk, in tiles.
const ChunkSize = 32

// Coord is an integer world tile position. Y grows upward: Top is Y+1.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Vec is a continuous world position, as reported by movement controllers.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add offsets c one step in direction d.
func (c Coord) Add(d Direction) Coord {
	off := offsets[d]
	return Coord{X: c.X + off.X, Y: c.Y + off.Y}
}

// Vec converts a tile position to its continuous world position.
func (c Coord) Vec() Vec {
	return Vec{X: float64(c.X), Y: float64(c.Y)}
}

// Coord truncates a continuous position toward zero, matching how movement
// controllers address the tile they stand on.
func (v Vec) Coord() Coord {
	return Coord{X: int(v.X), Y: int(v.Y)}
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// RelativePos returns the position of a world tile inside its chunk.
func RelativePos(world Coord) Coord {
	return Coord{X: floorMod(world.X, ChunkSize), Y: floorMod(world.Y, ChunkSize)}
}

// ChunkPos returns the key of the chunk holding a world tile: the world
// position of that chunk's bottom-left tile.
func ChunkPos(world Coord) Coord {
	rel := RelativePos(world)
	return Coord{X: world.X - rel.X, Y: world.Y - rel.Y}
}

// WorldPos is the inverse of RelativePos/ChunkPos.
func WorldPos(rel, chunkKey Coord) Coord {
	return Coord{X: chunkKey.X + rel.X, Y: chunkKey.Y + rel.Y}
}

// IsChunkKey reports whether c is aligned to the chunk grid.
func IsChunkKey(c Coord) bool {
	return floorMod(c.X, ChunkSize) == 0 && floorMod(c.Y, ChunkSize) == 0
}

// Bounds is the finite extent of a generated map, anchored at the origin.
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether c lies inside the map.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < b.Width && c.Y < b.Height
}

// Clamp moves c onto the nearest in-bounds tile. Neighbours of border tiles
// therefore resolve to the border tile itself.
func (b Bounds) Clamp(c Coord) Coord {
	if c.X < 0 {
		c.X = 0
	}
	if c.X >= b.Width {
		c.X = b.Width - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y >= b.Height {
		c.Y = b.Height - 1
	}
	return c
}

// ChunkKeys lists every chunk origin covering the map, x-major.
func (b Bounds) ChunkKeys() []Coord {
	var keys []Coord
	for x := 0; x < b.Width; x += ChunkSize {
		for y := 0; y < b.Height; y += ChunkSize {
			keys = append(keys, Coord{X: x, Y: y})
		}
	}
	return keys
}
