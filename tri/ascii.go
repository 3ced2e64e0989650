package tri

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hupe1980/fortgo/array"
)

// WriteASCII writes t in the plain Cart3D tri format.
//
// The header line holds nNode and nTri, followed by one line per node,
// one line per triangle and, when CompID is set, one component ID per
// line.
func WriteASCII(w io.Writer, t *Triangulation) error {
	if err := t.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%12d%12d\n", t.NNode(), t.NTri())
	writeNodes(bw, t.Nodes)
	writeTris(bw, t.Tris)
	if t.CompID != nil {
		writeCompIDs(bw, t.CompID.Data())
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write triangulation: %w", err)
	}
	return nil
}

// WriteASCIIQ writes t in the annotated Cart3D triq format.
//
// The header line holds nNode, nTri and the number of state values per
// node. Component IDs are always written; a nil CompID writes all ones.
func WriteASCIIQ(w io.Writer, t *Triangulation) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.Q == nil {
		return fmt.Errorf("triangulation has no state to annotate")
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%12d%12d%4d\n", t.NNode(), t.NTri(), t.NQ())
	writeNodes(bw, t.Nodes)
	writeTris(bw, t.Tris)
	writeCompIDs(bw, t.compIDs())
	writeState(bw, t.Q)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write triangulation: %w", err)
	}
	return nil
}

// WriteSTL writes t as an ASCII STL solid. Unit normals are computed
// from the nodal coordinates.
func WriteSTL(w io.Writer, t *Triangulation) error {
	normals, err := t.Normals()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	nodes := t.Nodes.Data()
	tris := t.Tris.Data()
	n := normals.Data()

	fmt.Fprintf(bw, "solid\n")
	for i := 0; i < t.NTri(); i++ {
		fmt.Fprintf(bw, "   facet normal   %5.2f %5.2f %5.2f\n",
			n[i*3+0], n[i*3+1], n[i*3+2])
		fmt.Fprintf(bw, "      outer loop\n")
		for k := 0; k < 3; k++ {
			p := nodes[(tris[i*3+k]-1)*3:]
			fmt.Fprintf(bw, "         vertex   %5.2f %5.2f %5.2f\n",
				p[0], p[1], p[2])
		}
		fmt.Fprintf(bw, "      endloop\n")
		fmt.Fprintf(bw, "   endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}

func writeNodes(bw *bufio.Writer, nodes *array.Array[float64]) {
	data := nodes.Data()
	if nodes.Dim(1) == 2 {
		for i := 0; i < nodes.Dim(0); i++ {
			fmt.Fprintf(bw, "%+15.8E %+15.8E\n", data[i*2], data[i*2+1])
		}
		return
	}
	for i := 0; i < nodes.Dim(0); i++ {
		fmt.Fprintf(bw, "%+15.8E %+15.8E %+15.8E\n",
			data[i*3], data[i*3+1], data[i*3+2])
	}
}

func writeTris(bw *bufio.Writer, tris *array.Array[int32]) {
	data := tris.Data()
	for i := 0; i < tris.Dim(0); i++ {
		fmt.Fprintf(bw, "%d %d %d\n", data[i*3], data[i*3+1], data[i*3+2])
	}
}

func writeCompIDs(bw *bufio.Writer, comps []int32) {
	for _, c := range comps {
		fmt.Fprintf(bw, "%d\n", c)
	}
}

// writeState writes one node state per line, leading with the first
// value (conventionally Cp) on its own line.
func writeState(bw *bufio.Writer, q *array.Array[float64]) {
	data := q.Data()
	nq := q.Dim(1)
	for i := 0; i < q.Dim(0); i++ {
		fmt.Fprintf(bw, "%.6f\n", data[i*nq])
		for j := 1; j < nq; j++ {
			fmt.Fprintf(bw, " %.6f", data[i*nq+j])
		}
		fmt.Fprintf(bw, "\n")
	}
}
