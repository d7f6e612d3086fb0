package world

import (
	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/edge"
)

// Tile is one world cell. Neighbours are not stored; use Store.Neighbour.
type Tile struct {
	Pos           coord.Coord `json:"pos"`
	Height        float64     `json:"height"`
	Precipitation float64     `json:"precipitation"`
	Temperature   float64     `json:"temperature"`
	Landmass      bool        `json:"landmass"`
	ZIndex        int         `json:"z_index"`
	// Biome points into the classifier's catalog and is shared between tiles.
	Biome     *biome.Biome `json:"-"`
	EdgeType  edge.Type    `json:"edge_type"`
	HillEdge  edge.Type    `json:"hill_edge"`
	Walkable  bool         `json:"walkable"`
	WaterType string       `json:"water_type,omitempty"`

	classified bool
	// merged tiles had their biome rewritten by a rare-shape rule and skip
	// cliff refinement.
	merged bool
}

// BiomeType returns the tile's biome name, or "" before classification.
func (t *Tile) BiomeType() biome.Type {
	if t.Biome == nil {
		return ""
	}
	return t.Biome.Type
}

// PlacedObject is an object spawned on a tile, relative to its chunk.
type PlacedObject struct {
	RelX   int    `json:"rel_x"`
	RelY   int    `json:"rel_y"`
	Sprite string `json:"sprite"`
}

// Chunk is a 32x32 block of tiles keyed by its bottom-left world position.
// Arrays are indexed [x][y].
type Chunk struct {
	Key   coord.Coord
	Tiles [coord.ChunkSize][coord.ChunkSize]*Tile
	Trees [coord.ChunkSize][coord.ChunkSize]bool

	// TreeSprites lists the sprite of every placed tree, in x-major tile order.
	TreeSprites []string
	Objects     []PlacedObject
}

// Tile returns the tile at a chunk-relative position.
func (c *Chunk) Tile(rel coord.Coord) *Tile {
	return c.Tiles[rel.X][rel.Y]
}

// SaveData is the persisted shape of a chunk: enough to redisplay trees and
// objects exactly as they were spawned.
type SaveData struct {
	Origin      coord.Coord    `json:"origin"`
	TreeSprites []string       `json:"tree_sprites"`
	Objects     []PlacedObject `json:"objects"`
}
