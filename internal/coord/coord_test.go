package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeAndChunkPos(t *testing.T) {
	tests := []struct {
		name     string
		world    Coord
		relative Coord
		chunk    Coord
	}{
		{name: "origin", world: Coord{0, 0}, relative: Coord{0, 0}, chunk: Coord{0, 0}},
		{name: "inside first chunk", world: Coord{5, 31}, relative: Coord{5, 31}, chunk: Coord{0, 0}},
		{name: "second chunk", world: Coord{32, 40}, relative: Coord{0, 8}, chunk: Coord{32, 32}},
		{name: "far chunk", world: Coord{100, 257}, relative: Coord{4, 1}, chunk: Coord{96, 256}},
		{name: "negative x", world: Coord{-1, 3}, relative: Coord{31, 3}, chunk: Coord{-32, 0}},
		{name: "negative boundary", world: Coord{-32, -33}, relative: Coord{0, 31}, chunk: Coord{-32, -64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.relative, RelativePos(tt.world))
			assert.Equal(t, tt.chunk, ChunkPos(tt.world))
			assert.Equal(t, tt.world, WorldPos(RelativePos(tt.world), ChunkPos(tt.world)))
			assert.True(t, IsChunkKey(ChunkPos(tt.world)))
		})
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Width: 64, Height: 32}

	assert.Equal(t, Coord{0, 0}, b.Clamp(Coord{-1, -1}))
	assert.Equal(t, Coord{63, 31}, b.Clamp(Coord{64, 32}))
	assert.Equal(t, Coord{10, 31}, b.Clamp(Coord{10, 40}))
	assert.Equal(t, Coord{10, 10}, b.Clamp(Coord{10, 10}))

	assert.True(t, b.Contains(Coord{63, 31}))
	assert.False(t, b.Contains(Coord{64, 0}))
	assert.False(t, b.Contains(Coord{0, -1}))
}

func TestBoundsChunkKeys(t *testing.T) {
	keys := Bounds{Width: 64, Height: 64}.ChunkKeys()
	assert.Equal(t, []Coord{{0, 0}, {0, 32}, {32, 0}, {32, 32}}, keys)
}

func TestDirections(t *testing.T) {
	origin := Coord{10, 10}
	for _, d := range Directions {
		back := origin.Add(d).Add(d.Opposite())
		assert.Equal(t, origin, back, "direction %s should invert", d)
	}

	assert.Equal(t, Coord{10, 11}, origin.Add(Top))
	assert.Equal(t, Coord{9, 9}, origin.Add(BotLeft))
	assert.True(t, TopRight.Diagonal())
	assert.False(t, Bot.Diagonal())
	assert.Equal(t, "botRight", BotRight.String())
}

func TestVecCoord(t *testing.T) {
	assert.Equal(t, Coord{3, 7}, Vec{X: 3.9, Y: 7.2}.Coord())
	assert.Equal(t, Vec{X: 3, Y: 7}, Coord{3, 7}.Vec())
}
