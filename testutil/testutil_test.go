package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711).Floats(16)
	b := NewRNG(4711).Floats(16)

	assert.Equal(t, a, b)

	rng := NewRNG(4711)
	_ = rng.Floats(16)
	rng.Reset()
	assert.Equal(t, a, rng.Floats(16))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestRNG_Ranges(t *testing.T) {
	rng := NewRNG(1)

	for _, v := range rng.Floats(100) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	for _, v := range rng.Ints(100, 7) {
		assert.GreaterOrEqual(t, v, int32(0))
		assert.Less(t, v, int32(7))
	}
	assert.Less(t, rng.Intn(10), 10)
	assert.Less(t, rng.Float64(), 1.0)
}

func TestSphere_IsValid(t *testing.T) {
	mesh := Sphere(8, 12, 3)

	require.NoError(t, mesh.Validate())

	// 2 poles + 7 rings of 12.
	assert.Equal(t, 2+7*12, mesh.NNode())
	// 2*12 cap triangles + 6 strips of 2*12.
	assert.Equal(t, 24+6*24, mesh.NTri())

	comps, err := mesh.CompIDs()
	require.NoError(t, err)
	assert.Equal(t, []int32{3}, comps)
}

func TestSphere_ClampsDegenerateInput(t *testing.T) {
	mesh := Sphere(0, 0, 1)
	require.NoError(t, mesh.Validate())
}

func TestGrid_IsValid(t *testing.T) {
	g := Grid(5, 4, 3)

	assert.Equal(t, 60, g.Points())
	assert.Len(t, g.X, 60)

	// Fortran order: J varies fastest.
	assert.Equal(t, 0.0, g.X[0])
	assert.Equal(t, 0.25, g.X[1])
	assert.Equal(t, 0.0, g.Y[0])
	assert.InDelta(t, 1.0/3.0, g.Y[5], 1e-15)

	// Degenerate axis pins the coordinate to zero.
	flat := Grid(2, 2, 1)
	for _, z := range flat.Z {
		assert.Equal(t, 0.0, z)
	}
}

func TestPerturbedGrid_StaysValid(t *testing.T) {
	rng := NewRNG(42)
	g := rng.PerturbedGrid(4, 4, 4)

	assert.Equal(t, 64, g.Points())
	assert.NotEqual(t, Grid(4, 4, 4).X, g.X)
}
