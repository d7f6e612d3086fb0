package biome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultCatalog())
	require.NoError(t, err)
	return c
}

func TestClassifier_Classify(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []struct {
		name          string
		height        float64
		precipitation float64
		temperature   float64
		landmass      bool
		want          Type
	}{
		{name: "deep water at sea", height: 0.02, temperature: 0.5, precipitation: 0.5, want: Ocean},
		{name: "deep water inland", height: 0.02, temperature: 0.5, precipitation: 0.5, landmass: true, want: Lake},
		{name: "water level is not water", height: WaterLevel, temperature: 0.45, precipitation: 0.7, landmass: true, want: Forest},
		{name: "shore", height: 0.2, temperature: 0.9, precipitation: 0.1, want: Beach},
		{name: "shore level inclusive", height: ShoreLevel, temperature: 0.9, precipitation: 0.1, want: Beach},
		{name: "low landmass is not beach", height: 0.2, temperature: 0.9, precipitation: 0.1, landmass: true, want: Desert},
		{name: "temperate wet", height: 0.5, temperature: 0.45, precipitation: 0.7, landmass: true, want: Forest},
		{name: "temperate dry", height: 0.5, temperature: 0.45, precipitation: 0.1, landmass: true, want: Grassland},
		{name: "hot dry", height: 0.5, temperature: 0.9, precipitation: 0.1, landmass: true, want: Desert},
		{name: "hot wet", height: 0.5, temperature: 0.9, precipitation: 0.8, landmass: true, want: Rainforest},
		{name: "cold", height: 0.5, temperature: 0.05, precipitation: 0.5, landmass: true, want: Ashland},
		{name: "high ground off the coast", height: 0.6, temperature: 0.45, precipitation: 0.7, want: Forest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.height, tt.precipitation, tt.temperature, tt.landmass)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Type)
		})
	}
}

func TestClassifier_NeverPicksHeightOnlyByClimate(t *testing.T) {
	c := newDefaultClassifier(t)

	for temp := 0.0; temp <= 1.0; temp += 0.05 {
		for precip := 0.0; precip <= 1.0; precip += 0.05 {
			got := c.Classify(0.5, precip, temp, true)
			assert.False(t, got.HeightOnly, "climate (%.2f, %.2f) picked %s", temp, precip, got.Type)
		}
	}
}

func TestClassifier_FirstMinimumWins(t *testing.T) {
	catalog := []Biome{
		{Type: Ocean, HeightOnly: true},
		{Type: Beach, HeightOnly: true},
		{Type: Lake, HeightOnly: true},
		{Type: "a", MaxTemperature: 1, MaxPrecipitation: 1},
		{Type: "b", MaxTemperature: 1, MaxPrecipitation: 1},
	}
	c, err := NewClassifier(catalog)
	require.NoError(t, err)

	assert.Equal(t, Type("a"), c.Classify(0.5, 0.5, 0.5, true).Type)
}

func TestNewClassifier_Errors(t *testing.T) {
	tests := []struct {
		name    string
		catalog []Biome
		wantErr string
	}{
		{
			name:    "missing lake",
			catalog: []Biome{{Type: Ocean, HeightOnly: true}, {Type: Beach, HeightOnly: true}, {Type: Forest}},
			wantErr: `missing "lake"`,
		},
		{
			name:    "no climate biomes",
			catalog: []Biome{{Type: Ocean, HeightOnly: true}, {Type: Beach, HeightOnly: true}, {Type: Lake, HeightOnly: true}},
			wantErr: "no climate biomes",
		},
		{
			name:    "duplicate",
			catalog: append(DefaultCatalog(), Biome{Type: Forest}),
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.catalog)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := NewClassifier(nil)
	assert.ErrorIs(t, err, ErrIncompleteCatalog)
}

func TestBiome_MatchesAndDistance(t *testing.T) {
	b := Biome{Type: Forest, MinTemperature: 0.2, MaxTemperature: 0.6, MinPrecipitation: 0.4, MaxPrecipitation: 1}

	assert.True(t, b.Matches(0.2, 0.4))
	assert.False(t, b.Matches(0.6, 0.5), "max is exclusive")
	assert.False(t, b.Matches(0.3, 0.1))

	assert.InDelta(t, 0.0, b.Distance(0.4, 0.7), 1e-12)
	assert.InDelta(t, 0.04+0.09, b.Distance(0.6, 1.0), 1e-12)
}

func TestClassifier_Lookup(t *testing.T) {
	c := newDefaultClassifier(t)

	b, ok := c.Lookup(Desert)
	require.True(t, ok)
	assert.Equal(t, Desert, b.Type)
	assert.Same(t, b, c.Classify(0.5, 0.1, 0.9, true), "classification returns shared catalog entries")

	_, ok = c.Lookup("swamp")
	assert.False(t, ok)

	assert.Len(t, c.Climate(), 5)
}
