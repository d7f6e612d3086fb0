package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/logging"
	"github.com/VoidMesh/tileworld/internal/pathfinding"
	"github.com/VoidMesh/tileworld/internal/store"
	"github.com/VoidMesh/tileworld/internal/terrain"
	"github.com/VoidMesh/tileworld/internal/world"
)

// ChunkSaves persists chunk save data for one world.
type ChunkSaves interface {
	SaveChunk(ctx context.Context, worldID string, data world.SaveData) error
	LoadChunk(ctx context.Context, worldID string, key coord.Coord) (world.SaveData, error)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// TileView is a tile with its biome flattened to a name.
type TileView struct {
	*world.Tile
	Biome biome.Type `json:"biome"`
}

type ChunkResponse struct {
	Key         coord.Coord          `json:"key"`
	Tiles       []TileView           `json:"tiles"`
	TreeSprites []string             `json:"tree_sprites"`
	Objects     []world.PlacedObject `json:"objects"`
}

type WorldResponse struct {
	World     store.World    `json:"world"`
	Params    terrain.Params `json:"params"`
	ChunkKeys []coord.Coord  `json:"chunk_keys"`
}

type PathResponse struct {
	Found bool          `json:"found"`
	Path  []coord.Coord `json:"path,omitempty"`
	Cost  int           `json:"cost"`
}

type Handler struct {
	tiles  *world.Store
	finder *pathfinding.Finder
	saves  ChunkSaves
	info   store.World
	logger *log.Logger
}

func NewHandler(tiles *world.Store, finder *pathfinding.Finder, saves ChunkSaves, info store.World) *Handler {
	return &Handler{
		tiles:  tiles,
		finder: finder,
		saves:  saves,
		info:   info,
		logger: logging.WithComponent("api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "tileworld",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, WorldResponse{
		World:     h.info,
		Params:    h.tiles.Params(),
		ChunkKeys: h.tiles.ChunkKeys(),
	})
}

func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	key, ok := h.chunkKey(w, r)
	if !ok {
		return
	}

	chunk, found := h.tiles.GetChunk(key)
	if !found {
		h.renderError(w, r, http.StatusNotFound, "chunk not found", nil)
		return
	}

	// Sprites and objects may be replaced by a concurrent save.
	saved, err := h.tiles.ExportChunk(key)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to read chunk", err)
		return
	}

	resp := ChunkResponse{
		Key:         chunk.Key,
		Tiles:       make([]TileView, 0, coord.ChunkSize*coord.ChunkSize),
		TreeSprites: saved.TreeSprites,
		Objects:     saved.Objects,
	}
	for x := 0; x < coord.ChunkSize; x++ {
		for y := 0; y < coord.ChunkSize; y++ {
			t := chunk.Tiles[x][y]
			resp.Tiles = append(resp.Tiles, TileView{Tile: t, Biome: t.BiomeType()})
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) GetTile(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if err := errors.Join(errX, errY); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid tile coordinates", err)
		return
	}

	t, ok := h.tiles.TileAt(coord.Coord{X: x, Y: y})
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "tile not found", nil)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, TileView{Tile: t, Biome: t.BiomeType()})
}

func (h *Handler) FindPath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var vals [4]int
	for i, name := range []string{"sx", "sy", "tx", "ty"} {
		v, err := strconv.Atoi(q.Get(name))
		if err != nil {
			h.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", name), err)
			return
		}
		vals[i] = v
	}
	start := coord.Coord{X: vals[0], Y: vals[1]}
	target := coord.Coord{X: vals[2], Y: vals[3]}

	path, found := h.finder.FindPath(r.Context(), start, target)
	resp := PathResponse{Found: found}
	if found {
		resp.Path = path
		resp.Cost = pathfinding.PathCost(start, path)
	}
	h.logger.Debug("Path request", "start", start, "target", target, "found", found, "steps", len(path))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) GetChunkSave(w http.ResponseWriter, r *http.Request) {
	key, ok := h.chunkKey(w, r)
	if !ok {
		return
	}

	data, err := h.saves.LoadChunk(r.Context(), h.info.ID, key)
	if errors.Is(err, store.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "no save for chunk", nil)
		return
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to load chunk save", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, data)
}

// PutChunkSave applies a save to the live chunk and persists it.
func (h *Handler) PutChunkSave(w http.ResponseWriter, r *http.Request) {
	key, ok := h.chunkKey(w, r)
	if !ok {
		return
	}

	var data world.SaveData
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	data.Origin = key

	if err := h.tiles.ImportChunk(data); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, world.ErrChunkNotFound) {
			status = http.StatusNotFound
		}
		h.renderError(w, r, status, err.Error(), err)
		return
	}
	if err := h.saves.SaveChunk(r.Context(), h.info.ID, data); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to save chunk", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, data)
}

// chunkKey parses the chunk origin from the URL. Origins must be multiples
// of the chunk size.
func (h *Handler) chunkKey(w http.ResponseWriter, r *http.Request) (coord.Coord, bool) {
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if err := errors.Join(errX, errY); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk coordinates", err)
		return coord.Coord{}, false
	}
	key := coord.Coord{X: x, Y: y}
	if !coord.IsChunkKey(key) {
		h.renderError(w, r, http.StatusBadRequest,
			fmt.Sprintf("chunk origin must be a multiple of %d", coord.ChunkSize), nil)
		return coord.Coord{}, false
	}
	return key, true
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		h.logger.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
