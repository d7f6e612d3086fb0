package world

import (
	"fmt"

	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/edge"
)

// AssignNeighbours classifies the tile at rel in chunk key against its eight
// neighbours, setting EdgeType from biome equality and HillEdge from height
// bands. Neighbour chunks are generated and classified on demand.
func (s *Store) AssignNeighbours(rel, key coord.Coord) (*Tile, error) {
	tile, err := s.classifiedTile(coord.WorldPos(rel, key))
	if err != nil {
		return nil, err
	}

	var around [8]*Tile
	for _, d := range coord.Directions {
		n, err := s.classifiedTile(s.Neighbour(tile.Pos, d))
		if err != nil {
			return nil, fmt.Errorf("neighbour %s of %s: %w", d, tile.Pos, err)
		}
		around[d] = n
	}

	biomes := edge.NewSameness(func(d coord.Direction) bool {
		return around[d].BiomeType() == tile.BiomeType()
	})
	tile.EdgeType = edge.Classify(biomes)
	if tile.EdgeType == edge.RareTB {
		// A one-tile-wide vertical strip takes the biome below it.
		tile.Biome = around[coord.Bot].Biome
		tile.EdgeType = edge.None
		tile.merged = true
	}

	heights := edge.NewSameness(func(d coord.Direction) bool {
		return tile.ZIndex <= around[d].ZIndex
	})
	tile.HillEdge = edge.ClassifyHill(heights)
	return tile, nil
}

// classifiedTile loads the tile at c, generating its chunk if needed, and
// assigns its biome the first time it is seen.
func (s *Store) classifiedTile(c coord.Coord) (*Tile, error) {
	tile, err := s.rawTile(c)
	if err != nil {
		return nil, err
	}
	if tile.classified {
		return tile, nil
	}

	if err := s.trimTerrain(tile); err != nil {
		return nil, err
	}
	tile.Biome = s.classifier.Classify(tile.Height, tile.Precipitation, tile.Temperature, tile.Landmass)
	tile.classified = true
	return tile, nil
}

func (s *Store) rawTile(c coord.Coord) (*Tile, error) {
	chunk, err := s.EnsureChunk(coord.ChunkPos(c))
	if err != nil {
		return nil, err
	}
	return chunk.Tile(coord.RelativePos(c)), nil
}

// trimTerrain removes height slivers too thin to close with a top edge: a
// tile stepping up from the row below whose band does not reach three rows
// up drops back to the lower band. Only applies when y+3 stays in the chunk.
func (s *Store) trimTerrain(tile *Tile) error {
	if coord.RelativePos(tile.Pos).Y+3 >= coord.ChunkSize {
		return nil
	}

	next, err := s.rawTile(coord.Coord{X: tile.Pos.X, Y: tile.Pos.Y + 3})
	if err != nil {
		return err
	}
	prev, err := s.rawTile(coord.Coord{X: tile.Pos.X, Y: max(tile.Pos.Y-1, 0)})
	if err != nil {
		return err
	}

	if prev.ZIndex < tile.ZIndex && next.ZIndex != tile.ZIndex {
		tile.ZIndex = prev.ZIndex
	}
	return nil
}

// mergeRare folds tiles left with a three-sided biome edge into a neighbour:
// the left one, or the right one when the tile already matches the left.
func (s *Store) mergeRare(tile *Tile) bool {
	if !tile.EdgeType.Rare() {
		return false
	}
	left, okL := s.TileAt(s.Neighbour(tile.Pos, coord.Left))
	right, okR := s.TileAt(s.Neighbour(tile.Pos, coord.Right))
	if !okL || !okR {
		return false
	}

	if tile.Biome != left.Biome {
		tile.Biome = left.Biome
	} else {
		tile.Biome = right.Biome
	}
	tile.EdgeType = edge.None
	tile.merged = true
	return true
}
