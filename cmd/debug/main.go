package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/VoidMesh/tileworld/cmd/debug/components"
	"github.com/VoidMesh/tileworld/internal/config"
	"github.com/VoidMesh/tileworld/internal/coord"
	"github.com/VoidMesh/tileworld/internal/logging"
	"github.com/VoidMesh/tileworld/internal/pathfinding"
	"github.com/VoidMesh/tileworld/internal/terrain"
	"github.com/VoidMesh/tileworld/internal/world"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML generation file (defaults when empty)")
	seed := flag.Int64("seed", -1, "Override the map seed (-1 keeps the configured one)")
	size := flag.Int("size", 0, "Override map width and height (multiple of 32)")
	layer := flag.String("layer", "biome", "Layer to draw (biome, height, hill)")
	x := flag.Int("x", 0, "Left edge of the window")
	y := flag.Int("y", 0, "Bottom edge of the window")
	width := flag.Int("w", 64, "Window width in tiles")
	height := flag.Int("h", 32, "Window height in tiles")
	route := flag.String("path", "", "Overlay a path: sx,sy,tx,ty")
	logLevel := flag.String("log", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	logging.Configure(os.Stderr, logging.ParseLevel(*logLevel))
	logger := logging.GetLogger()

	gen, err := config.LoadGeneration(*configPath)
	if err != nil {
		logger.Fatal("Failed to load generation config", "error", err, "path", *configPath)
	}
	if *seed >= 0 {
		gen.Terrain.Seed = *seed
	}
	if *size > 0 {
		gen.Terrain.Width, gen.Terrain.Height = *size, *size
	}

	mapLayer, err := components.ParseLayer(*layer)
	if err != nil {
		logger.Fatal("Invalid layer", "error", err)
	}

	tg, err := terrain.NewGenerator(gen.Terrain)
	if err != nil {
		logger.Fatal("Invalid terrain params", "error", err)
	}
	classifier, err := gen.Classifier()
	if err != nil {
		logger.Fatal("Invalid biome catalog", "error", err)
	}

	ctx := context.Background()
	tiles := world.NewStore(tg, classifier)
	if err := tiles.Generate(ctx); err != nil {
		logger.Fatal("Failed to generate map", "error", err)
	}

	view := components.MapView{
		Tiles:  tiles,
		Origin: coord.Coord{X: *x, Y: *y},
		Width:  *width,
		Height: *height,
		Layer:  mapLayer,
	}

	title := fmt.Sprintf("tileworld seed %d, %dx%d", gen.Terrain.Seed, gen.Terrain.Width, gen.Terrain.Height)
	status := ""
	if *route != "" {
		var sx, sy, tx, ty int
		if _, err := fmt.Sscanf(*route, "%d,%d,%d,%d", &sx, &sy, &tx, &ty); err != nil {
			logger.Fatal("Invalid path flag, want sx,sy,tx,ty", "value", *route, "error", err)
		}
		start := coord.Coord{X: sx, Y: sy}
		path, found := pathfinding.NewFinder(tiles).FindPath(ctx, start, coord.Coord{X: tx, Y: ty})
		if found {
			view.Path = path
			status = fmt.Sprintf("path: %d steps, cost %d", len(path), pathfinding.PathCost(start, path))
		} else {
			status = "path: none"
		}
	}

	fmt.Println(components.TitleStyle.Render(title))
	fmt.Println(view.Render())
	if status != "" {
		fmt.Println(components.SubtitleStyle.Render(status))
	}
}
