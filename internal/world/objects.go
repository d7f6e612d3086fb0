package world

import (
	"math"
	"math/rand"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/edge"
)

const (
	// ChestSprite is the sprite of a placed key object.
	ChestSprite = "chest"

	stairRadius    = 30
	stairThreshold = 2

	// minTreeDistance keeps placed trees from overlapping.
	minTreeDistance = 4.0
)

// PlaceStairs cuts staircases into south-facing cliffs. A candidate is an
// interior chunk tile whose left, right and three upper neighbours share its
// band while the three below are lower. A new staircase needs to be beyond
// stairRadius of the last one or on a different band; candidates on the same
// row within stairThreshold of a staircase's first tile widen it instead.
func (s *Store) PlaceStairs() int {
	var (
		next   coord.Coord
		run    coord.Coord
		lastZ  int
		placed int
	)

	for _, key := range s.ChunkKeys() {
		chunk, _ := s.GetChunk(key)
		z := func(x, y int) int { return chunk.Tiles[x][y].ZIndex }

		for x := 1; x < coord.ChunkSize-1; x++ {
			for y := 1; y < coord.ChunkSize-1; y++ {
				here := z(x, y)
				if z(x-1, y+1) != here || z(x, y+1) != here || z(x+1, y+1) != here {
					continue
				}
				if z(x-1, y) != here || z(x+1, y) != here {
					continue
				}
				if z(x-1, y-1) >= here || z(x, y-1) >= here || z(x+1, y-1) >= here {
					continue
				}

				abs := coord.WorldPos(coord.Coord{X: x, Y: y}, key)
				widen := placed > 0 && abs.Y == run.Y && abs.X > run.X && abs.X <= run.X+stairThreshold && lastZ == here
				fresh := abs.X >= next.X || abs.Y >= next.Y || lastZ != here
				if !widen && !fresh {
					continue
				}
				if !widen {
					next = coord.Coord{X: abs.X + stairRadius, Y: abs.Y + stairRadius}
					run = abs
					lastZ = here
				}

				chunk.Tiles[x][y].HillEdge = edge.Staircase
				chunk.Tiles[x][y+1].HillEdge = edge.StaircaseTop
				chunk.Tiles[x][y-1].HillEdge = edge.StaircaseBot
				placed++
			}
		}
	}

	s.logger.Debug("Stairs placed", "count", placed)
	return placed
}

// placeable reports whether an object may stand on t: off the map border and
// with no hill edge anywhere around it.
func (s *Store) placeable(t *Tile) bool {
	if t.Pos.X <= 0 || t.Pos.Y <= 0 || t.Pos.X >= s.bounds.Width-1 || t.Pos.Y >= s.bounds.Height-1 {
		return false
	}
	for _, d := range coord.Directions {
		n, ok := s.TileAt(s.Neighbour(t.Pos, d))
		if !ok || n.HillEdge != edge.None {
			return false
		}
	}
	return true
}

// placeTrees picks a sprite for every tree-map hit standing on open walkable
// ground of a biome that grows trees. Sprites are drawn from a generator
// seeded per chunk so regeneration reproduces them.
func (s *Store) placeTrees(keys []coord.Coord) {
	seed := s.gen.Params().Seed
	total := 0
	for _, key := range keys {
		chunk, _ := s.GetChunk(key)
		rng := rand.New(rand.NewSource(seed ^ int64(key.X)<<32 ^ int64(key.Y)))

		var spots []coord.Coord
		sprites := chunk.TreeSprites[:0]
		for x := 0; x < coord.ChunkSize; x++ {
			for y := 0; y < coord.ChunkSize; y++ {
				t := chunk.Tiles[x][y]
				if !chunk.Trees[x][y] || !t.Walkable || t.HillEdge != edge.None {
					continue
				}
				if t.Biome == nil || len(t.Biome.Trees) == 0 || tooClose(t.Pos, spots, minTreeDistance) {
					continue
				}
				spots = append(spots, t.Pos)
				sprites = append(sprites, t.Biome.Trees[rng.Intn(len(t.Biome.Trees))])
			}
		}
		chunk.TreeSprites = sprites
		total += len(sprites)
	}
	s.logger.Debug("Trees placed", "count", total)
}

// PlaceKeyObjects puts one chest in each climate biome. Candidate tiles are
// visited in a seeded random order; a chest needs a placeable tile at least
// (width+height)/8 away from every chest already placed. It returns the
// chest positions. Previously placed chests are removed first.
func (s *Store) PlaceKeyObjects(seed int64) []coord.Coord {
	keys := s.ChunkKeys()
	for _, key := range keys {
		chunk, _ := s.GetChunk(key)
		kept := chunk.Objects[:0]
		for _, obj := range chunk.Objects {
			if obj.Sprite != ChestSprite {
				kept = append(kept, obj)
			}
		}
		chunk.Objects = kept
	}

	climate := s.classifier.Climate()
	byBiome := make(map[biome.Type][]*Tile, len(climate))
	for _, b := range climate {
		byBiome[b.Type] = nil
	}
	for _, key := range keys {
		chunk, _ := s.GetChunk(key)
		for x := 0; x < coord.ChunkSize; x++ {
			for y := 0; y < coord.ChunkSize; y++ {
				t := chunk.Tiles[x][y]
				if list, ok := byBiome[t.BiomeType()]; ok {
					byBiome[t.BiomeType()] = append(list, t)
				}
			}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	minDistance := float64((s.bounds.Width + s.bounds.Height) / 8)

	var used []coord.Coord
	for _, b := range climate {
		tiles := byBiome[b.Type]
		rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

		for _, t := range tiles {
			if !s.placeable(t) || tooClose(t.Pos, used, minDistance) {
				continue
			}
			chunk, _ := s.GetChunk(coord.ChunkPos(t.Pos))
			rel := coord.RelativePos(t.Pos)
			chunk.Objects = append(chunk.Objects, PlacedObject{RelX: rel.X, RelY: rel.Y, Sprite: ChestSprite})
			used = append(used, t.Pos)
			break
		}
	}

	s.logger.Info("Key objects placed", "count", len(used), "min_distance", minDistance)
	return used
}

func tooClose(p coord.Coord, others []coord.Coord, limit float64) bool {
	for _, o := range others {
		if distance(p, o) < limit {
			return true
		}
	}
	return false
}

func distance(a, b coord.Coord) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
