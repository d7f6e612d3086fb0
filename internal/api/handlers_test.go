package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/pathfinding"
	"github.com/VoidMesh/tileworld/internal/store"
	"github.com/VoidMesh/tileworld/internal/terrain"
	"github.com/VoidMesh/tileworld/internal/testutil"
	"github.com/VoidMesh/tileworld/internal/world"
)

type flatField struct{ value float64 }

func (f flatField) Sample(x, y float64) float64 { return f.value }
func (f flatField) GetSeed() int64              { return 0 }

// MockChunkSaves is a mock implementation of ChunkSaves.
type MockChunkSaves struct {
	mock.Mock
}

func (m *MockChunkSaves) SaveChunk(ctx context.Context, worldID string, data world.SaveData) error {
	args := m.Called(ctx, worldID, data)
	return args.Error(0)
}

func (m *MockChunkSaves) LoadChunk(ctx context.Context, worldID string, key coord.Coord) (world.SaveData, error) {
	args := m.Called(ctx, worldID, key)
	return args.Get(0).(world.SaveData), args.Error(1)
}

// setupServer serves a generated 64x64 plateau: ocean along x=0 and y=0,
// open land everywhere inland.
func setupServer(t *testing.T) (*httptest.Server, *MockChunkSaves) {
	t.Helper()

	params := terrain.DefaultParams()
	params.Width, params.Height = 64, 64
	gen := terrain.NewGeneratorWithFields(params, flatField{0.5}, flatField{0.4}, flatField{0})
	classifier, err := biome.NewClassifier(biome.DefaultCatalog())
	require.NoError(t, err)

	tiles := world.NewStore(gen, classifier)
	require.NoError(t, tiles.Generate(context.Background()))

	saves := &MockChunkSaves{}
	info := store.World{ID: "world-1", Name: "plateau", Width: 64, Height: 64}
	handler := NewHandler(tiles, pathfinding.NewFinder(tiles), saves, info)

	srv := httptest.NewServer(SetupRoutes(handler, 5*time.Second))
	t.Cleanup(srv.Close)
	return srv, saves
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf strings.Builder
	_, err = io.Copy(&buf, resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, []byte(buf.String())
}

func TestHealthCheck(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	srv, _ := setupServer(t)
	status, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestGetWorld(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	srv, _ := setupServer(t)
	status, body := do(t, http.MethodGet, srv.URL+"/api/v1/world", "")
	require.Equal(t, http.StatusOK, status)

	var resp WorldResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "world-1", resp.World.ID)
	assert.Equal(t, 64, resp.Params.Width)
	assert.Len(t, resp.ChunkKeys, 4)
}

func TestGetTile(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	srv, _ := setupServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBiome  string
	}{
		{name: "inland", path: "/api/v1/tiles/20/20", wantStatus: http.StatusOK, wantBiome: "desert"},
		{name: "coast", path: "/api/v1/tiles/0/5", wantStatus: http.StatusOK, wantBiome: "ocean"},
		{name: "outside", path: "/api/v1/tiles/99/0", wantStatus: http.StatusNotFound},
		{name: "not a number", path: "/api/v1/tiles/a/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, http.MethodGet, srv.URL+tt.path, "")
			require.Equal(t, tt.wantStatus, status)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(body, &fields))
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, float64(tt.wantStatus), fields["code"])
				return
			}
			assert.Equal(t, tt.wantBiome, fields["biome"])
			assert.Contains(t, fields, "hill_edge")
		})
	}
}

func TestGetChunk(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	srv, _ := setupServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/api/v1/chunks/32/0", "")
	require.Equal(t, http.StatusOK, status)
	var resp ChunkResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, coord.Coord{X: 32, Y: 0}, resp.Key)
	assert.Len(t, resp.Tiles, coord.ChunkSize*coord.ChunkSize)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/chunks/5/0", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/v1/chunks/64/0", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFindPath(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	srv, _ := setupServer(t)

	t.Run("found", func(t *testing.T) {
		status, body := do(t, http.MethodGet, srv.URL+"/api/v1/path?sx=10&sy=10&tx=15&ty=10", "")
		require.Equal(t, http.StatusOK, status)

		var resp PathResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.True(t, resp.Found)
		assert.Equal(t, 50, resp.Cost)
		assert.Len(t, resp.Path, 5)
		assert.Equal(t, coord.Coord{X: 15, Y: 10}, resp.Path[4])
	})

	t.Run("into the sea", func(t *testing.T) {
		status, body := do(t, http.MethodGet, srv.URL+"/api/v1/path?sx=10&sy=10&tx=0&ty=10", "")
		require.Equal(t, http.StatusOK, status)

		var resp PathResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.False(t, resp.Found)
		assert.Empty(t, resp.Path)
	})

	t.Run("missing parameter", func(t *testing.T) {
		status, _ := do(t, http.MethodGet, srv.URL+"/api/v1/path?sx=10&sy=10&tx=15", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestChunkSave(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	srv, saves := setupServer(t)
	url := srv.URL + "/api/v1/chunks/32/32/save"
	key := coord.Coord{X: 32, Y: 32}
	want := world.SaveData{
		Origin:      key,
		TreeSprites: []string{"oak"},
		Objects:     []world.PlacedObject{{RelX: 1, RelY: 2, Sprite: "chest"}},
	}

	saves.On("LoadChunk", mock.Anything, "world-1", key).Return(world.SaveData{}, store.ErrNotFound).Once()
	saves.On("SaveChunk", mock.Anything, "world-1", want).Return(nil).Once()
	saves.On("LoadChunk", mock.Anything, "world-1", key).Return(want, nil).Once()

	status, _ := do(t, http.MethodGet, url, "")
	assert.Equal(t, http.StatusNotFound, status)

	body := `{"tree_sprites":["oak"],"objects":[{"rel_x":1,"rel_y":2,"sprite":"chest"}]}`
	status, _ = do(t, http.MethodPut, url, body)
	require.Equal(t, http.StatusOK, status)

	status, got := do(t, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, status)
	var loaded world.SaveData
	require.NoError(t, json.Unmarshal(got, &loaded))
	assert.Equal(t, want, loaded)

	status, got = do(t, http.MethodGet, srv.URL+"/api/v1/chunks/32/32", "")
	require.Equal(t, http.StatusOK, status)
	var chunk ChunkResponse
	require.NoError(t, json.Unmarshal(got, &chunk))
	assert.Equal(t, want.Objects, chunk.Objects, "the save is applied to the live chunk")

	saves.AssertExpectations(t)
}

func TestChunkSave_Errors(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name       string
		method     string
		url        string
		body       string
		setup      func(m *MockChunkSaves)
		wantStatus int
	}{
		{name: "bad json", method: http.MethodPut, url: "/api/v1/chunks/0/0/save", body: "{", wantStatus: http.StatusBadRequest},
		{name: "object outside chunk", method: http.MethodPut, url: "/api/v1/chunks/0/0/save", body: `{"objects":[{"rel_x":40,"rel_y":0,"sprite":"chest"}]}`, wantStatus: http.StatusBadRequest},
		{name: "unknown chunk", method: http.MethodPut, url: "/api/v1/chunks/64/0/save", body: `{}`, wantStatus: http.StatusNotFound},
		{name: "unaligned", method: http.MethodPut, url: "/api/v1/chunks/3/0/save", body: `{}`, wantStatus: http.StatusBadRequest},
		{
			name:   "storage failure on save",
			method: http.MethodPut,
			url:    "/api/v1/chunks/0/0/save",
			body:   `{}`,
			setup: func(m *MockChunkSaves) {
				m.On("SaveChunk", mock.Anything, "world-1", world.SaveData{Origin: coord.Coord{}}).Return(errors.New("disk full")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "storage failure on load",
			method: http.MethodGet,
			url:    "/api/v1/chunks/0/0/save",
			setup: func(m *MockChunkSaves) {
				m.On("LoadChunk", mock.Anything, "world-1", coord.Coord{}).Return(world.SaveData{}, errors.New("disk full")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, saves := setupServer(t)
			if tt.setup != nil {
				tt.setup(saves)
			}

			status, body := do(t, tt.method, srv.URL+tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, status)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantStatus >= 500 {
				assert.Equal(t, "Internal server error", resp.Error)
			}

			saves.AssertExpectations(t)
			if tt.setup == nil {
				saves.AssertNotCalled(t, "SaveChunk", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
