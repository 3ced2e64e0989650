// Package plot3d writes multi-zone structured PLOT3D grid files.
//
// A PLOT3D grid file holds a zone count, the J, K, L dimensions of
// each zone, and per zone the x, y and z coordinates of every point.
// The binary form wraps each of those sections in a Fortran record.
package plot3d

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hupe1980/fortgo/internal/conv"
	"github.com/hupe1980/fortgo/record"
)

// Grid is one structured zone. The coordinate slices hold J*K*L values
// each, with J varying fastest as in Fortran storage order.
type Grid struct {
	J, K, L int32
	X, Y, Z []float64
}

// Points returns the number of points in the zone.
func (g *Grid) Points() int {
	return int(g.J) * int(g.K) * int(g.L)
}

// X is a multi-zone PLOT3D grid.
type X struct {
	Grids []Grid
}

// NG returns the number of zones.
func (x *X) NG() int {
	return len(x.Grids)
}

// Validate checks the zone dimensions against the coordinate slices.
func (x *X) Validate() error {
	if len(x.Grids) == 0 {
		return fmt.Errorf("plot3d file has no zones")
	}
	for i := range x.Grids {
		g := &x.Grids[i]
		if g.J < 1 || g.K < 1 || g.L < 1 {
			return fmt.Errorf("zone %d has invalid dimensions %dx%dx%d", i, g.J, g.K, g.L)
		}
		npt := g.Points()
		if len(g.X) != npt || len(g.Y) != npt || len(g.Z) != npt {
			return fmt.Errorf("zone %d needs %d points per coordinate, got x=%d y=%d z=%d",
				i, npt, len(g.X), len(g.Y), len(g.Z))
		}
	}
	return nil
}

// Options configures the PLOT3D writers.
type Options struct {
	// ByteOrder selects the byte order of markers and payloads.
	ByteOrder record.ByteOrder

	// SinglePrecision narrows coordinates to float32 payloads. Zone
	// counts and dimensions are int32 either way.
	SinglePrecision bool

	// SingleZone omits the leading zone-count record. Only valid for
	// files with exactly one zone; some legacy readers expect this
	// form.
	SingleZone bool
}

// DefaultOptions writes little-endian double precision, matching the
// byte order of the x86 workstations most OVERFLOW and Cart3D tooling
// runs on.
var DefaultOptions = Options{
	ByteOrder: record.Little,
}

// Write writes x as a binary PLOT3D grid file.
//
// The file holds a zone-count record (unless SingleZone), one record
// with the J, K, L dimensions of every zone, and per zone one record
// with all x, then all y, then all z coordinates.
func Write(w io.Writer, x *X, optFns ...func(o *Options)) error {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := x.Validate(); err != nil {
		return err
	}
	if opts.SingleZone && x.NG() != 1 {
		return fmt.Errorf("single-zone file cannot hold %d zones", x.NG())
	}

	ng, err := conv.IntToInt32(x.NG())
	if err != nil {
		return fmt.Errorf("too many zones: %w", err)
	}

	rw, err := record.NewWriter(w, func(ro *record.Options) {
		ro.ByteOrder = opts.ByteOrder
	})
	if err != nil {
		return err
	}

	if !opts.SingleZone {
		err := rw.Frame(4, func(fw *record.Writer) error {
			return fw.WriteInt32(ng)
		})
		if err != nil {
			return fmt.Errorf("failed to write zone count: %w", err)
		}
	}

	err = rw.Frame(x.NG()*12, func(fw *record.Writer) error {
		for i := range x.Grids {
			g := &x.Grids[i]
			for _, d := range [3]int32{g.J, g.K, g.L} {
				if err := fw.WriteInt32(d); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write dimensions: %w", err)
	}

	elemSize := 8
	if opts.SinglePrecision {
		elemSize = 4
	}

	for i := range x.Grids {
		g := &x.Grids[i]

		err := rw.Frame(3*g.Points()*elemSize, func(fw *record.Writer) error {
			for _, coord := range [3][]float64{g.X, g.Y, g.Z} {
				if opts.SinglePrecision {
					if err := record.WriteRawSingle(fw, coord); err != nil {
						return err
					}
				} else {
					if err := record.WriteRaw(fw, coord); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write zone %d: %w", i, err)
		}
	}

	return nil
}

// WriteASCII writes x as a text PLOT3D grid file: the zone count
// (unless SingleZone), one dimension line per zone, then per zone one
// line each for the x, y and z coordinates.
func WriteASCII(w io.Writer, x *X, optFns ...func(o *Options)) error {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := x.Validate(); err != nil {
		return err
	}
	if opts.SingleZone && x.NG() != 1 {
		return fmt.Errorf("single-zone file cannot hold %d zones", x.NG())
	}

	bw := bufio.NewWriter(w)

	if !opts.SingleZone {
		fmt.Fprintf(bw, "%d\n", x.NG())
	}
	for i := range x.Grids {
		g := &x.Grids[i]
		fmt.Fprintf(bw, "%d %d %d\n", g.J, g.K, g.L)
	}
	for i := range x.Grids {
		g := &x.Grids[i]
		writeCoordLine(bw, g.X)
		writeCoordLine(bw, g.Y)
		writeCoordLine(bw, g.Z)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write grid: %w", err)
	}
	return nil
}

func writeCoordLine(bw *bufio.Writer, vals []float64) {
	for i, v := range vals {
		if i > 0 {
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "%g", v)
	}
	bw.WriteByte('\n')
}
