package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VoidMesh/tileworld/internal/api"
	"github.com/VoidMesh/tileworld/internal/config"
	"github.com/VoidMesh/tileworld/internal/logging"
	"github.com/VoidMesh/tileworld/internal/pathfinding"
	"github.com/VoidMesh/tileworld/internal/store"
	"github.com/VoidMesh/tileworld/internal/terrain"
	"github.com/VoidMesh/tileworld/internal/world"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	logging.Configure(os.Stderr, logging.ParseLevel(cfg.Logging.Level))
	logger := logging.GetLogger()
	logger.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	gen, err := config.LoadGeneration(cfg.World.GenerationFile)
	if err != nil {
		logger.Fatal("Failed to load generation config", "path", cfg.World.GenerationFile, "error", err)
	}

	// Initialize database
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Open(ctx, cfg.Database.Path,
		store.WithPool(cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime))
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run database migrations", "error", err)
	}

	info, err := findOrCreateWorld(ctx, db, cfg.World.Name, gen.Terrain)
	if err != nil {
		logger.Fatal("Failed to prepare world record", "error", err)
	}

	// Generate the map
	tiles, err := buildWorld(ctx, cfg.World, gen)
	if err != nil {
		logger.Fatal("Failed to generate world", "error", err)
	}
	if err := restoreSaves(ctx, db, tiles, info.ID); err != nil {
		logger.Fatal("Failed to restore chunk saves", "error", err)
	}

	// Initialize API handlers
	finder := pathfinding.NewFinder(tiles, pathfinding.WithMaxExpansions(cfg.World.MaxPathExpansions))
	handler := api.NewHandler(tiles, finder, db, info)
	router := api.SetupRoutes(handler, cfg.Server.RequestTimeout)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting tileworld server", "port", cfg.Server.Port, "world", info.ID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
		logger.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	} else {
		logger.Debug("Server shutdown completed gracefully")
	}

	logger.Info("Server exited")
}

// findOrCreateWorld reuses the newest world with the same name and seed so
// saves survive restarts.
func findOrCreateWorld(ctx context.Context, db *store.DB, name string, params terrain.Params) (store.World, error) {
	worlds, err := db.ListWorlds(ctx)
	if err != nil {
		return store.World{}, err
	}
	for i := len(worlds) - 1; i >= 0; i-- {
		w := worlds[i]
		if w.Name == name && w.Seed == params.Seed && w.Width == params.Width && w.Height == params.Height {
			logging.GetLogger().Debug("Reusing world record", "id", w.ID, "name", name)
			return w, nil
		}
	}
	return db.CreateWorld(ctx, name, params)
}

func buildWorld(ctx context.Context, cfg config.WorldConfig, gen *config.Generation) (*world.Store, error) {
	tg, err := terrain.NewGenerator(gen.Terrain)
	if err != nil {
		return nil, err
	}
	classifier, err := gen.Classifier()
	if err != nil {
		return nil, err
	}

	tiles := world.NewStore(tg, classifier, world.WithWorkers(cfg.Workers))

	genCtx, cancel := context.WithTimeout(ctx, cfg.GenerateTimeout)
	defer cancel()
	if err := tiles.Generate(genCtx); err != nil {
		return nil, err
	}
	return tiles, nil
}

func restoreSaves(ctx context.Context, db *store.DB, tiles *world.Store, worldID string) error {
	keys, err := db.ListChunkKeys(ctx, worldID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		data, err := db.LoadChunk(ctx, worldID, key)
		if err != nil {
			return err
		}
		if err := tiles.ImportChunk(data); err != nil {
			return fmt.Errorf("chunk %s: %w", key, err)
		}
	}
	if len(keys) > 0 {
		logging.GetLogger().Info("Restored chunk saves", "count", len(keys))
	}
	return nil
}
