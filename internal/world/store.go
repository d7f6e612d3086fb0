package world

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/edge"
	"github.com/VoidMesh/tileworld/internal/terrain"
)

const defaultWorkers = 4

var (
	ErrOutOfBounds   = errors.New("chunk outside map bounds")
	ErrChunkNotFound = errors.New("chunk not generated")
)

// Store owns every chunk of one map. Lookups never generate: a miss returns
// false and callers are expected to run Generate first.
type Store struct {
	mu     sync.RWMutex
	chunks map[coord.Coord]*Chunk

	gen        *terrain.Generator
	classifier *biome.Classifier
	bounds     coord.Bounds
	workers    int
	logger     LoggerInterface

	generated bool
}

type Option func(*Store)

// WithWorkers sets how many chunks the noise pass generates concurrently.
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLogger(logger LoggerInterface) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store for the map described by gen's params.
func NewStore(gen *terrain.Generator, classifier *biome.Classifier, opts ...Option) *Store {
	s := &Store{
		chunks:     make(map[coord.Coord]*Chunk),
		gen:        gen,
		classifier: classifier,
		bounds:     gen.Params().Bounds(),
		workers:    defaultWorkers,
		logger:     NewDefaultLoggerWrapper(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "chunk-store")
	s.logger.Debug("Creating chunk store", "width", s.bounds.Width, "height", s.bounds.Height, "workers", s.workers)
	return s
}

// Bounds returns the map extent.
func (s *Store) Bounds() coord.Bounds {
	return s.bounds
}

// Params returns the terrain parameters the map is generated from.
func (s *Store) Params() terrain.Params {
	return s.gen.Params()
}

// Classifier returns the biome classifier tiles are assigned from.
func (s *Store) Classifier() *biome.Classifier {
	return s.classifier
}

// ChunkKeys returns the keys of all loaded chunks, x-major.
func (s *Store) ChunkKeys() []coord.Coord {
	s.mu.RLock()
	keys := make([]coord.Coord, 0, len(s.chunks))
	for k := range s.chunks {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	slices.SortFunc(keys, func(a, b coord.Coord) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	return keys
}

func (s *Store) GetChunk(key coord.Coord) (*Chunk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[key]
	return c, ok
}

// GetTile returns the tile at rel inside the chunk keyed by key.
func (s *Store) GetTile(rel, key coord.Coord) (*Tile, bool) {
	if rel.X < 0 || rel.Y < 0 || rel.X >= coord.ChunkSize || rel.Y >= coord.ChunkSize {
		return nil, false
	}
	chunk, ok := s.GetChunk(key)
	if !ok {
		return nil, false
	}
	return chunk.Tile(rel), true
}

// TileAt returns the tile at a world position.
func (s *Store) TileAt(c coord.Coord) (*Tile, bool) {
	if !s.bounds.Contains(c) {
		return nil, false
	}
	return s.GetTile(coord.RelativePos(c), coord.ChunkPos(c))
}

func (s *Store) TileRelativePos(c coord.Coord) coord.Coord {
	return coord.RelativePos(c)
}

func (s *Store) TileChunkPos(c coord.Coord) coord.Coord {
	return coord.ChunkPos(c)
}

// Neighbour returns the position one step from c in direction d, clamped to
// the map. Border tiles are their own neighbours.
func (s *Store) Neighbour(c coord.Coord, d coord.Direction) coord.Coord {
	return s.bounds.Clamp(c.Add(d))
}

// EnsureChunk runs the noise pass for key unless the chunk is already loaded.
func (s *Store) EnsureChunk(key coord.Coord) (*Chunk, error) {
	if !coord.IsChunkKey(key) || !s.bounds.Contains(key) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, key)
	}
	if c, ok := s.GetChunk(key); ok {
		return c, nil
	}

	chunk := newChunk(s.gen.GenerateChunk(key))

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.chunks[key]; ok {
		return existing, nil
	}
	s.chunks[key] = chunk
	return chunk, nil
}

func newChunk(raw *terrain.Chunk) *Chunk {
	chunk := &Chunk{Key: raw.Key, Trees: raw.Trees}
	for x := 0; x < coord.ChunkSize; x++ {
		for y := 0; y < coord.ChunkSize; y++ {
			cell := raw.Cells[x][y]
			chunk.Tiles[x][y] = &Tile{
				Pos:           coord.WorldPos(coord.Coord{X: x, Y: y}, raw.Key),
				Height:        cell.Height,
				Precipitation: cell.Precipitation,
				Temperature:   cell.Temperature,
				Landmass:      cell.Landmass,
				ZIndex:        cell.ZIndex,
			}
		}
	}
	return chunk
}

// HillEdge reports the hill edge of the tile at c.
func (s *Store) HillEdge(c coord.Coord) (edge.Type, bool) {
	t, ok := s.TileAt(c)
	if !ok {
		return edge.None, false
	}
	return t.HillEdge, true
}

// SetHillEdge overwrites the hill edge at c; missing tiles are ignored.
func (s *Store) SetHillEdge(c coord.Coord, e edge.Type) {
	if t, ok := s.TileAt(c); ok {
		t.HillEdge = e
	}
}

// ExportChunk returns the persisted shape of a loaded chunk.
func (s *Store) ExportChunk(key coord.Coord) (SaveData, error) {
	chunk, ok := s.GetChunk(key)
	if !ok {
		return SaveData{}, fmt.Errorf("%w: %s", ErrChunkNotFound, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SaveData{
		Origin:      chunk.Key,
		TreeSprites: slices.Clone(chunk.TreeSprites),
		Objects:     slices.Clone(chunk.Objects),
	}, nil
}

// ImportChunk replaces the tree sprites and objects of a loaded chunk with
// previously saved ones.
func (s *Store) ImportChunk(data SaveData) error {
	chunk, ok := s.GetChunk(data.Origin)
	if !ok {
		return fmt.Errorf("%w: %s", ErrChunkNotFound, data.Origin)
	}
	for i, obj := range data.Objects {
		if obj.RelX < 0 || obj.RelY < 0 || obj.RelX >= coord.ChunkSize || obj.RelY >= coord.ChunkSize {
			return fmt.Errorf("object %d at (%d,%d) lies outside the chunk", i, obj.RelX, obj.RelY)
		}
	}

	s.mu.Lock()
	chunk.TreeSprites = slices.Clone(data.TreeSprites)
	chunk.Objects = slices.Clone(data.Objects)
	s.mu.Unlock()

	s.logger.Debug("Imported chunk save", "chunk_x", data.Origin.X, "chunk_y", data.Origin.Y,
		"trees", len(data.TreeSprites), "objects", len(data.Objects))
	return nil
}
