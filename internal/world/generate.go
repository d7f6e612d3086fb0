package world

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/edge"
)

// Generate builds the whole map. The noise pass runs concurrently; every
// pass after it needs all neighbours' raw values and runs single-threaded.
// Calling Generate again on a generated store is a no-op.
func (s *Store) Generate(ctx context.Context) error {
	if s.generated {
		s.logger.Debug("Map already generated")
		return nil
	}

	start := time.Now()
	keys := s.bounds.ChunkKeys()
	s.logger.Info("Generating map", "chunks", len(keys), "workers", s.workers)

	if err := s.noisePass(ctx, keys); err != nil {
		return fmt.Errorf("noise pass: %w", err)
	}

	passes := []struct {
		name string
		run  func() error
	}{
		{"classify", func() error { return s.forEachTile(keys, s.assign) }},
		{"rare merge", func() error { return s.forEachTile(keys, s.rareMerge) }},
		{"cliffs", s.refineCliffs},
		{"stairs", func() error { s.PlaceStairs(); return nil }},
		{"walkability", func() error { return s.forEachTile(keys, s.finishTile) }},
		{"trees", func() error { s.placeTrees(keys); return nil }},
		{"key objects", func() error { s.PlaceKeyObjects(s.gen.Params().Seed); return nil }},
	}
	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return err
		}
		passStart := time.Now()
		if err := p.run(); err != nil {
			return fmt.Errorf("%s pass: %w", p.name, err)
		}
		s.logger.Debug("Pass completed", "pass", p.name, "duration", time.Since(passStart))
	}

	s.generated = true
	s.logger.Info("Map generated", "duration", time.Since(start), "biomes", s.biomeCounts())
	return nil
}

func (s *Store) noisePass(ctx context.Context, keys []coord.Coord) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := s.EnsureChunk(key)
			return err
		})
	}
	return g.Wait()
}

func (s *Store) forEachTile(keys []coord.Coord, fn func(t *Tile, key coord.Coord) error) error {
	for _, key := range keys {
		chunk, ok := s.GetChunk(key)
		if !ok {
			return fmt.Errorf("%w: %s", ErrChunkNotFound, key)
		}
		for x := 0; x < coord.ChunkSize; x++ {
			for y := 0; y < coord.ChunkSize; y++ {
				if err := fn(chunk.Tiles[x][y], key); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Store) assign(t *Tile, key coord.Coord) error {
	_, err := s.AssignNeighbours(coord.RelativePos(t.Pos), key)
	return err
}

func (s *Store) rareMerge(t *Tile, _ coord.Coord) error {
	s.mergeRare(t)
	return nil
}

// refineCliffs walks the map row by row from the bottom so each tile sees the
// final hill edge of the tile below.
func (s *Store) refineCliffs() error {
	for y := 0; y < s.bounds.Height; y++ {
		for x := 0; x < s.bounds.Width; x++ {
			t, ok := s.TileAt(coord.Coord{X: x, Y: y})
			if !ok {
				return fmt.Errorf("%w: tile (%d,%d)", ErrChunkNotFound, x, y)
			}
			if t.merged {
				continue
			}
			edge.RefineCliff(s, t.Pos)
		}
	}
	return nil
}

// finishTile settles walkability and lake tint once edges are final.
func (s *Store) finishTile(t *Tile, _ coord.Coord) error {
	t.Walkable = t.Biome != nil && t.Biome.Walkable && !t.HillEdge.Blocking()
	if t.BiomeType() == biome.Lake {
		t.WaterType = waterType(t.Temperature)
	}
	return nil
}

func waterType(temperature float64) string {
	switch {
	case temperature < 0.25:
		return string(biome.Ashland)
	case temperature > 0.6:
		return string(biome.Rainforest)
	default:
		return string(biome.Forest)
	}
}

func (s *Store) biomeCounts() map[biome.Type]int {
	counts := make(map[biome.Type]int)
	for _, key := range s.ChunkKeys() {
		chunk, _ := s.GetChunk(key)
		for x := 0; x < coord.ChunkSize; x++ {
			for y := 0; y < coord.ChunkSize; y++ {
				counts[chunk.Tiles[x][y].BiomeType()]++
			}
		}
	}
	return counts
}
