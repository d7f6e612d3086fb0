package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/tileworld/internal/biome"
	"github.com/VoidMesh/tileworld/internal/edge"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Biome colors
	OceanColor      = lipgloss.Color("#1E3F8A")
	LakeColor       = lipgloss.Color("#3A78C2")
	BeachColor      = lipgloss.Color("#E8D8A0")
	AshlandColor    = lipgloss.Color("#5A4A4A")
	GrasslandColor  = lipgloss.Color("#8CBF4F")
	ForestColor     = lipgloss.Color("#2E6B34")
	DesertColor     = lipgloss.Color("#D9A65A")
	RainforestColor = lipgloss.Color("#145A32")
	UnknownColor    = lipgloss.Color("#000000")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true)

	// Grid styles (one map tile per cell)
	GridCellStyle = lipgloss.NewStyle().
			Width(2).
			Height(1).
			Align(lipgloss.Center)

	PathCellStyle = GridCellStyle.
			Foreground(DangerColor).
			Bold(true)

	ObjectCellStyle = GridCellStyle.
			Foreground(AccentColor).
			Bold(true)
)

// Tile symbols
const (
	PathSymbol     = "**"
	ChestSymbol    = "[]"
	StairSymbol    = "=="
	CliffSymbol    = "##"
	SlopeSymbol    = "++"
	FlatSymbol     = ".."
	UnknownSymbol  = "??"
	TreeSymbol     = "^^"
	WaterSymbol    = "~~"
	LandSymbol     = "  "
	HighlandSymbol = "/\\"
)

var biomeColors = map[biome.Type]lipgloss.Color{
	biome.Ocean:      OceanColor,
	biome.Lake:       LakeColor,
	biome.Beach:      BeachColor,
	biome.Ashland:    AshlandColor,
	biome.Grassland:  GrasslandColor,
	biome.Forest:     ForestColor,
	biome.Desert:     DesertColor,
	biome.Rainforest: RainforestColor,
}

// GetBiomeColor returns the map color for a biome. Biomes from a custom
// catalog fall back to gray.
func GetBiomeColor(t biome.Type) lipgloss.Color {
	if c, ok := biomeColors[t]; ok {
		return c
	}
	if t == "" {
		return UnknownColor
	}
	return Gray
}

// GetHillSymbol returns the symbol for a hill edge tag.
func GetHillSymbol(t edge.Type) string {
	switch {
	case t == edge.None:
		return FlatSymbol
	case t.Staircase():
		return StairSymbol
	case t >= edge.Cliff:
		return CliffSymbol
	default:
		return SlopeSymbol
	}
}

// GetHeightSymbol returns the symbol for a height band.
func GetHeightSymbol(zIndex int) string {
	switch zIndex {
	case 0:
		return WaterSymbol
	case 1:
		return LandSymbol
	default:
		return HighlandSymbol
	}
}
