package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/tileworld/internal/testutil"
)

func TestNewGenerator(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		seed int64
	}{
		{name: "positive seed", seed: 12345},
		{name: "zero seed", seed: 0},
		{name: "negative seed", seed: -9876},
		{name: "max int64 seed", seed: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := NewGenerator(tt.seed)
			require.NotNil(t, generator)
			assert.Equal(t, tt.seed, generator.GetSeed())
		})
	}
}

func TestGenerator_Sample_Range(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		x, y float64
	}{
		{name: "origin", x: 0, y: 0},
		{name: "fractional", x: 0.123456, y: 0.789012},
		{name: "positive", x: 10.5, y: 20.7},
		{name: "negative", x: -15.3, y: -8.9},
		{name: "large", x: 100000.25, y: 200000.75},
	}

	generator := NewGenerator(12345)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := generator.Sample(tt.x, tt.y)
			assert.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		})
	}
}

func TestGenerator_Sample_MatchesRawNoise(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	generator := NewGenerator(42)
	raw := generator.GetNoise(3.3, 4.4)
	if raw >= -1 && raw <= 1 {
		assert.InDelta(t, (raw+1)/2, generator.Sample(3.3, 4.4), 1e-12)
	}
}

func TestNoiseDeterminism(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	coords := []struct{ x, y float64 }{{0.5, 0.5}, {10.5, 20.7}, {-15.3, -8.9}, {100.1, 200.2}}

	first := NewGenerator(12345)
	for i := 0; i < 3; i++ {
		again := NewGenerator(12345)
		for _, c := range coords {
			assert.Equal(t, first.Sample(c.x, c.y), again.Sample(c.x, c.y),
				"sample should be deterministic at (%.2f, %.2f)", c.x, c.y)
		}
	}
}

func TestNoiseDifferentSeeds(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a := NewGenerator(1)
	b := NewGenerator(2)

	different := false
	for i := 0; i < 16; i++ {
		x := float64(i)*1.37 + 0.5
		if math.Abs(a.GetNoise(x, x*0.7)-b.GetNoise(x, x*0.7)) > 1e-4 {
			different = true
			break
		}
	}
	assert.True(t, different, "different seeds should produce different fields")
}

func BenchmarkGenerator_Sample(b *testing.B) {
	generator := NewGenerator(12345)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := float64(i%1000) / 32
		generator.Sample(v, v)
	}
}

func TestNew_Backends(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		backend string
		want    any
		wantErr bool
	}{
		{backend: "", want: &Generator{}},
		{backend: BackendPerlin, want: &Generator{}},
		{backend: BackendSimplex, want: &Simplex{}},
		{backend: "value", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			f, err := New(tt.backend, 7)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
			assert.Equal(t, int64(7), f.GetSeed())
		})
	}
}

func TestSimplex_Sample(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a, b := NewSimplex(99), NewSimplex(99)
	for _, c := range []struct{ x, y float64 }{{0, 0}, {1.25, -3.5}, {400.1, 12.9}} {
		v := a.Sample(c.x, c.y)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, b.Sample(c.x, c.y), "same seed, same value")
	}
}
