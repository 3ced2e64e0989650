// Package tri writes Cart3D surface triangulations.
//
// A triangulation is a list of nodal coordinates, a list of triangles
// referencing those nodes by one-based index, and optionally a
// component ID per triangle and a state vector per node. The package
// writes the annotated (triq) and unannotated ASCII formats, the four
// Fortran record binary variants, and STL.
package tri

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/internal/conv"
)

// Triangulation is a Cart3D surface triangulation.
type Triangulation struct {
	// Nodes holds nodal coordinates as an nNode x 3 array (nNode x 2
	// for planar meshes).
	Nodes *array.Array[float64]

	// Tris holds one-based node indices as an nTri x 3 array.
	Tris *array.Array[int32]

	// CompID labels each triangle with a positive component ID as an
	// nTri array. Writers that need component IDs default a nil CompID
	// to all ones.
	CompID *array.Array[int32]

	// Q holds nodal state values as an nNode x nq array. Only the
	// annotated (triq) writers emit it.
	Q *array.Array[float64]
}

// NNode returns the number of nodes.
func (t *Triangulation) NNode() int {
	if t.Nodes == nil {
		return 0
	}
	return t.Nodes.Dim(0)
}

// NTri returns the number of triangles.
func (t *Triangulation) NTri() int {
	if t.Tris == nil {
		return 0
	}
	return t.Tris.Dim(0)
}

// NQ returns the number of state values per node.
func (t *Triangulation) NQ() int {
	if t.Q == nil {
		return 0
	}
	return t.Q.Dim(1)
}

// Validate checks the shapes and cross references of the triangulation.
func (t *Triangulation) Validate() error {
	if t.Nodes == nil {
		return fmt.Errorf("triangulation has no nodes")
	}
	if t.Tris == nil {
		return fmt.Errorf("triangulation has no triangles")
	}

	if t.Nodes.Rank() != 2 {
		return fmt.Errorf("nodal coordinates must be a two-dimensional array, got rank %d", t.Nodes.Rank())
	}
	if nd := t.Nodes.Dim(1); nd != 2 && nd != 3 {
		return fmt.Errorf("nodal coordinates must be an Nx3 or Nx2 array, got %d columns", nd)
	}
	if t.Tris.Rank() != 2 || t.Tris.Dim(1) != 3 {
		return fmt.Errorf("nodal indices must be an Nx3 array, got shape %v", t.Tris.Shape())
	}

	nNode := t.NNode()
	for i, idx := range t.Tris.Data() {
		if idx < 1 || int(idx) > nNode {
			return fmt.Errorf("triangle %d references node %d, valid range is 1..%d", i/3, idx, nNode)
		}
	}

	if t.CompID != nil {
		if t.CompID.Rank() != 1 || t.CompID.Dim(0) != t.NTri() {
			return fmt.Errorf("component IDs must be a one-dimensional array with one value per triangle")
		}
		for i, c := range t.CompID.Data() {
			if c < 1 {
				return fmt.Errorf("component ID of triangle %d must be positive, got %d", i, c)
			}
		}
	}

	if t.Q != nil {
		if t.Q.Rank() != 2 {
			return fmt.Errorf("state must be a two-dimensional array, got rank %d", t.Q.Rank())
		}
		if t.Q.Dim(0) != nNode {
			return fmt.Errorf("state must have one row per node: %d rows, %d nodes", t.Q.Dim(0), nNode)
		}
	}

	return nil
}

// compIDs returns the component ID slice, defaulting a nil CompID to
// all ones.
func (t *Triangulation) compIDs() []int32 {
	if t.CompID != nil {
		return t.CompID.Data()
	}
	ids := make([]int32, t.NTri())
	for i := range ids {
		ids[i] = 1
	}
	return ids
}

// CompIDs returns the distinct component IDs in ascending order.
func (t *Triangulation) CompIDs() ([]int32, error) {
	bm := roaring.New()
	for i, c := range t.compIDs() {
		u, err := conv.Int32ToUint32(c)
		if err != nil {
			return nil, fmt.Errorf("invalid component ID for triangle %d: %w", i, err)
		}
		bm.Add(u)
	}

	ids := make([]int32, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		ids = append(ids, int32(it.Next()))
	}
	return ids, nil
}

// SubsetByCompID returns a new triangulation containing only the
// triangles whose component ID is in ids. Nodes are renumbered
// compactly and unreferenced nodes are dropped. State values follow
// their nodes.
func (t *Triangulation) SubsetByCompID(ids ...int32) (*Triangulation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	want := roaring.New()
	for _, id := range ids {
		u, err := conv.Int32ToUint32(id)
		if err != nil {
			return nil, fmt.Errorf("invalid component ID: %w", err)
		}
		want.Add(u)
	}

	tris := t.Tris.Data()
	comps := t.compIDs()

	// First pass: select triangles and mark referenced nodes.
	keep := make([]int, 0, len(comps))
	newIndex := make([]int32, t.NNode()+1) // one-based, 0 = dropped
	for i, c := range comps {
		if !want.Contains(uint32(c)) {
			continue
		}
		keep = append(keep, i)
		for _, idx := range tris[i*3 : i*3+3] {
			newIndex[idx] = 1
		}
	}

	// Renumber kept nodes compactly, preserving their original order.
	nKeep := int32(0)
	for old := range newIndex {
		if newIndex[old] != 0 {
			nKeep++
			newIndex[old] = nKeep
		}
	}

	nd := t.Nodes.Dim(1)
	nq := t.NQ()
	nodes := t.Nodes.Data()

	newNodes := make([]float64, int(nKeep)*nd)
	var newQ []float64
	if t.Q != nil {
		newQ = make([]float64, int(nKeep)*nq)
	}
	for old, idx := range newIndex {
		if idx == 0 {
			continue
		}
		copy(newNodes[int(idx-1)*nd:int(idx)*nd], nodes[(old-1)*nd:old*nd])
		if t.Q != nil {
			copy(newQ[int(idx-1)*nq:int(idx)*nq], t.Q.Data()[(old-1)*nq:old*nq])
		}
	}

	newTris := make([]int32, len(keep)*3)
	newComp := make([]int32, len(keep))
	for j, i := range keep {
		for k := 0; k < 3; k++ {
			newTris[j*3+k] = newIndex[tris[i*3+k]]
		}
		newComp[j] = comps[i]
	}

	sub := &Triangulation{}
	var err error
	if sub.Nodes, err = array.New(newNodes, int(nKeep), nd); err != nil {
		return nil, err
	}
	if sub.Tris, err = array.New(newTris, len(keep), 3); err != nil {
		return nil, err
	}
	if sub.CompID, err = array.New(newComp, len(keep)); err != nil {
		return nil, err
	}
	if t.Q != nil {
		if sub.Q, err = array.New(newQ, int(nKeep), nq); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// Normals returns the unit normal of each triangle as an nTri x 3
// array. Degenerate triangles get a zero normal.
func (t *Triangulation) Normals() (*array.Array[float64], error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Nodes.Dim(1) != 3 {
		return nil, fmt.Errorf("normals require three-dimensional nodes")
	}

	nodes := t.Nodes.Data()
	tris := t.Tris.Data()
	nTri := t.NTri()

	normals := make([]float64, nTri*3)
	for i := 0; i < nTri; i++ {
		p0 := nodes[(tris[i*3+0]-1)*3:]
		p1 := nodes[(tris[i*3+1]-1)*3:]
		p2 := nodes[(tris[i*3+2]-1)*3:]

		ux, uy, uz := p1[0]-p0[0], p1[1]-p0[1], p1[2]-p0[2]
		vx, vy, vz := p2[0]-p0[0], p2[1]-p0[1], p2[2]-p0[2]

		nx := uy*vz - uz*vy
		ny := uz*vx - ux*vz
		nz := ux*vy - uy*vx

		if norm := math.Sqrt(nx*nx + ny*ny + nz*nz); norm > 0 {
			normals[i*3+0] = nx / norm
			normals[i*3+1] = ny / norm
			normals[i*3+2] = nz / norm
		}
	}

	return array.New(normals, nTri, 3)
}
