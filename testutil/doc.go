// Package testutil provides fixtures for tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
// It generates deterministic random data and small but structurally
// realistic meshes and grids.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	vals := rng.Floats(1000)
//
// # Mesh and Grid Fixtures
//
//	t := testutil.Sphere(8, 12, 1)     // closed surface triangulation
//	g := testutil.Grid(5, 4, 3)        // structured unit-cube zone
package testutil
