// Package store persists worlds and chunk save data in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/logging"
	"github.com/VoidMesh/tileworld/internal/terrain"
	"github.com/VoidMesh/tileworld/internal/world"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a world or chunk save does not exist.
var ErrNotFound = errors.New("not found")

// World is a stored map definition. Tiles are never stored; they are
// regenerated from the seed and dimensions.
type World struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Seed      int64     `json:"seed"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// DB is the SQLite-backed store.
type DB struct {
	db     *sql.DB
	logger *log.Logger
}

// Option configures the connection pool.
type Option func(*sql.DB)

// WithPool sets the connection pool limits.
func WithPool(maxOpen, maxIdle int, lifetime time.Duration) Option {
	return func(db *sql.DB) {
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxIdle)
		db.SetConnMaxLifetime(lifetime)
	}
}

// Open connects to the database file at path and checks the connection.
// Foreign keys are enabled on every connection.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	logger := logging.WithComponent("store")
	logger.Debug("Opening database connection", "path", path)

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	for _, opt := range opts {
		opt(db)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database initialized", "path", path)
	return &DB{db: db, logger: logger}, nil
}

// Migrate applies all pending schema migrations.
func (s *DB) Migrate() error {
	s.logger.Debug("Creating migration driver")
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		s.logger.Debug("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		s.logger.Debug("Successfully applied migrations")
	}

	s.logger.Info("Database migrations completed")
	return nil
}

// Close closes the underlying database.
func (s *DB) Close() error {
	return s.db.Close()
}

// CreateWorld records a new world generated from params.
func (s *DB) CreateWorld(ctx context.Context, name string, params terrain.Params) (World, error) {
	w := World{
		ID:        uuid.NewString(),
		Name:      name,
		Seed:      params.Seed,
		Width:     params.Width,
		Height:    params.Height,
		CreatedAt: time.Now().UTC(),
	}

	start := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO worlds (id, name, seed, width, height, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Seed, w.Width, w.Height, w.CreatedAt)
	s.logQuery("CreateWorld", start, err, w.ID, w.Name)
	if err != nil {
		return World{}, fmt.Errorf("failed to create world: %w", err)
	}
	return w, nil
}

// GetWorld loads a world by id.
func (s *DB) GetWorld(ctx context.Context, id string) (World, error) {
	var w World
	start := time.Now()
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, seed, width, height, created_at FROM worlds WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &w.Seed, &w.Width, &w.Height, &w.CreatedAt)
	s.logQuery("GetWorld", start, err, id)
	if errors.Is(err, sql.ErrNoRows) {
		return World{}, fmt.Errorf("world %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return World{}, fmt.Errorf("failed to get world: %w", err)
	}
	return w, nil
}

// ListWorlds returns every world, oldest first.
func (s *DB) ListWorlds(ctx context.Context) ([]World, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, seed, width, height, created_at FROM worlds ORDER BY created_at, id`)
	s.logQuery("ListWorlds", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	defer rows.Close()

	var worlds []World
	for rows.Next() {
		var w World
		if err := rows.Scan(&w.ID, &w.Name, &w.Seed, &w.Width, &w.Height, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan world: %w", err)
		}
		worlds = append(worlds, w)
	}
	return worlds, rows.Err()
}

// SaveChunk stores data for its chunk, replacing any earlier save.
func (s *DB) SaveChunk(ctx context.Context, worldID string, data world.SaveData) error {
	if !coord.IsChunkKey(data.Origin) {
		return fmt.Errorf("save origin %s is not a chunk key", data.Origin)
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode chunk save: %w", err)
	}

	start := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chunk_saves (world_id, chunk_x, chunk_y, data, saved_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (world_id, chunk_x, chunk_y) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		worldID, data.Origin.X, data.Origin.Y, blob, time.Now().UTC())
	s.logQuery("SaveChunk", start, err, worldID, data.Origin.X, data.Origin.Y)
	if err != nil {
		return fmt.Errorf("failed to save chunk: %w", err)
	}
	return nil
}

// LoadChunk returns the save for the chunk at key.
func (s *DB) LoadChunk(ctx context.Context, worldID string, key coord.Coord) (world.SaveData, error) {
	var blob []byte
	start := time.Now()
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM chunk_saves WHERE world_id = ? AND chunk_x = ? AND chunk_y = ?`,
		worldID, key.X, key.Y).Scan(&blob)
	s.logQuery("LoadChunk", start, err, worldID, key.X, key.Y)
	if errors.Is(err, sql.ErrNoRows) {
		return world.SaveData{}, fmt.Errorf("chunk %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return world.SaveData{}, fmt.Errorf("failed to load chunk: %w", err)
	}

	var data world.SaveData
	if err := json.Unmarshal(blob, &data); err != nil {
		return world.SaveData{}, fmt.Errorf("failed to decode chunk save: %w", err)
	}
	return data, nil
}

// ListChunkKeys lists the chunks of a world that have saves, x-major.
func (s *DB) ListChunkKeys(ctx context.Context, worldID string) ([]coord.Coord, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx,
		`SELECT chunk_x, chunk_y FROM chunk_saves WHERE world_id = ? ORDER BY chunk_x, chunk_y`, worldID)
	s.logQuery("ListChunkKeys", start, err, worldID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunk saves: %w", err)
	}
	defer rows.Close()

	var keys []coord.Coord
	for rows.Next() {
		var k coord.Coord
		if err := rows.Scan(&k.X, &k.Y); err != nil {
			return nil, fmt.Errorf("failed to scan chunk key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *DB) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("Database query failed", "query", queryName, "duration", duration, "error", err, "args", args)
		return
	}
	s.logger.Debug("Database query executed", "query", queryName, "duration", duration, "args", args)
}
