package tri

import (
	"fmt"
	"io"

	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/internal/conv"
	"github.com/hupe1980/fortgo/record"
)

// Options configures the binary triangulation writer.
type Options struct {
	// ByteOrder selects the byte order of markers and payloads.
	ByteOrder record.ByteOrder

	// SinglePrecision narrows nodal coordinates to float32 payloads.
	// Triangle indices and component IDs are int32 either way.
	SinglePrecision bool
}

// DefaultOptions writes big-endian single precision, the byte order
// Cart3D tools have historically defaulted to.
var DefaultOptions = Options{
	ByteOrder:       record.Big,
	SinglePrecision: true,
}

// WriteBinary writes t as a Fortran record triangulation file.
//
// The file holds four records: a header of [nNode, nTri], the nodal
// coordinates, the triangle node indices and the component IDs. A nil
// CompID writes all ones.
func WriteBinary(w io.Writer, t *Triangulation, optFns ...func(o *Options)) error {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := t.Validate(); err != nil {
		return err
	}

	nNode, err := conv.IntToInt32(t.NNode())
	if err != nil {
		return fmt.Errorf("too many nodes: %w", err)
	}
	nTri, err := conv.IntToInt32(t.NTri())
	if err != nil {
		return fmt.Errorf("too many triangles: %w", err)
	}

	rw, err := record.NewWriter(w, func(ro *record.Options) {
		ro.ByteOrder = opts.ByteOrder
	})
	if err != nil {
		return err
	}

	err = rw.Frame(8, func(fw *record.Writer) error {
		if err := fw.WriteInt32(nNode); err != nil {
			return err
		}
		return fw.WriteInt32(nTri)
	})
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if opts.SinglePrecision {
		err = record.WriteSingle2D(rw, t.Nodes)
	} else {
		err = record.Write2D(rw, t.Nodes)
	}
	if err != nil {
		return fmt.Errorf("failed to write nodes: %w", err)
	}

	if err := record.Write2D(rw, t.Tris); err != nil {
		return fmt.Errorf("failed to write tris: %w", err)
	}

	comp, err := t.compIDArray()
	if err != nil {
		return err
	}
	if err := record.Write1D(rw, comp); err != nil {
		return fmt.Errorf("failed to write component IDs: %w", err)
	}

	return nil
}

func (t *Triangulation) compIDArray() (*array.Array[int32], error) {
	if t.CompID != nil {
		return t.CompID, nil
	}
	return array.New(t.compIDs(), t.NTri())
}
