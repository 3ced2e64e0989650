package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/plot3d"
	"github.com/hupe1980/fortgo/tri"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Floats returns n random float64 values in [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) Floats(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.rand.Float64()
	}
	return vals
}

// Ints returns n random int32 values in [0, limit).
func (r *RNG) Ints(n int, limit int32) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals := make([]int32, n)
	for i := range vals {
		vals[i] = r.rand.Int31n(limit)
	}
	return vals
}

// Sphere returns a surface triangulation of the unit sphere with nLat
// latitude bands and nLon longitude steps, all triangles labeled with
// compID. The mesh is closed and passes Validate, making it a
// realistic fixture for the tri writers.
func Sphere(nLat, nLon int, compID int32) *tri.Triangulation {
	if nLat < 2 {
		nLat = 2
	}
	if nLon < 3 {
		nLon = 3
	}

	// Nodes: north pole, nLat-1 rings of nLon points, south pole.
	var coords []float64
	coords = append(coords, 0, 0, 1)
	for i := 1; i < nLat; i++ {
		theta := math.Pi * float64(i) / float64(nLat)
		for j := 0; j < nLon; j++ {
			phi := 2 * math.Pi * float64(j) / float64(nLon)
			coords = append(coords,
				math.Sin(theta)*math.Cos(phi),
				math.Sin(theta)*math.Sin(phi),
				math.Cos(theta),
			)
		}
	}
	south := int32(1 + (nLat-1)*nLon + 1)
	coords = append(coords, 0, 0, -1)

	// One-based node index of latitude ring i, longitude step j.
	ring := func(i, j int) int32 {
		return int32(2 + (i-1)*nLon + j%nLon)
	}

	var idx []int32
	// Cap fans around the poles.
	for j := 0; j < nLon; j++ {
		idx = append(idx, 1, ring(1, j), ring(1, j+1))
		idx = append(idx, south, ring(nLat-1, j+1), ring(nLat-1, j))
	}
	// Quad strips between rings, split into two triangles.
	for i := 1; i < nLat-1; i++ {
		for j := 0; j < nLon; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			idx = append(idx, a, c, b)
			idx = append(idx, b, c, d)
		}
	}

	nNode := len(coords) / 3
	nTri := len(idx) / 3

	nodes, _ := array.New(coords, nNode, 3)
	tris, _ := array.New(idx, nTri, 3)

	comps := make([]int32, nTri)
	for i := range comps {
		comps[i] = compID
	}
	comp, _ := array.New(comps, nTri)

	return &tri.Triangulation{Nodes: nodes, Tris: tris, CompID: comp}
}

// Grid returns a j x k x l structured zone filling the unit cube, with
// coordinates stored in Fortran order (j varying fastest).
func Grid(j, k, l int) plot3d.Grid {
	npt := j * k * l
	g := plot3d.Grid{
		J: int32(j), K: int32(k), L: int32(l),
		X: make([]float64, 0, npt),
		Y: make([]float64, 0, npt),
		Z: make([]float64, 0, npt),
	}

	unit := func(i, n int) float64 {
		if n == 1 {
			return 0
		}
		return float64(i) / float64(n-1)
	}

	for il := 0; il < l; il++ {
		for ik := 0; ik < k; ik++ {
			for ij := 0; ij < j; ij++ {
				g.X = append(g.X, unit(ij, j))
				g.Y = append(g.Y, unit(ik, k))
				g.Z = append(g.Z, unit(il, l))
			}
		}
	}
	return g
}

// PerturbedGrid returns Grid(j,k,l) with points jittered by the RNG,
// for payloads that do not collapse to repeated values.
func (r *RNG) PerturbedGrid(j, k, l int) plot3d.Grid {
	g := Grid(j, k, l)

	n := j
	if k > n {
		n = k
	}
	if l > n {
		n = l
	}
	jitter := 0.25 / float64(n)

	for i := range g.X {
		g.X[i] += (r.Float64() - 0.5) * jitter
		g.Y[i] += (r.Float64() - 0.5) * jitter
		g.Z[i] += (r.Float64() - 0.5) * jitter
	}
	return g
}
