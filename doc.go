// Package fortgo writes Fortran unformatted sequential files from Go.
//
// Fortgo produces the record framing emitted by gfortran and ifort for
// unformatted sequential I/O: every record is a payload wrapped in a
// leading and trailing length marker. Readers on the Fortran side
// (solvers, grid tools, post-processors) consume these files directly.
//
// # Quick Start
//
// Write a framed array record:
//
//	f, _ := fortgo.Create("grid.bin", fortgo.WithByteOrder(record.Big))
//	defer f.Close()
//
//	a, _ := array.New([]float64{1.0, 2.0, 3.0, 4.0, 5.0, 6.0}, 2, 3)
//	fortgo.WriteRecord(f, a)
//
// Write a whole file atomically (temp file plus rename):
//
//	err := fortgo.Save("solution.bin", func(w *record.Writer) error {
//	    return record.Write(w, a)
//	}, fortgo.WithByteOrder(record.Big))
//
// Pick up the byte order a Fortran consumer expects from its own
// environment variables (F_UFMTENDIAN, GFORTRAN_CONVERT_UNIT):
//
//	f, _ := fortgo.Create("out.bin", fortgo.WithEnvByteOrder())
//
// # Byte Orders
//
// Four orders are supported: Native (host), Swapped (opposite of host),
// Big, and Little. Native and Swapped are relative to the machine the
// writer runs on; Big and Little pin the output regardless of host.
//
// # Record Framing
//
// Each record is
//
//	[length marker][payload][length marker]
//
// with both markers holding the payload byte count in the record's byte
// order. Markers are 4 bytes by default; 8-byte markers are available
// for consumers compiled with wide record lengths. A failed payload
// write leaves no trailing marker, so truncated files fail fast on the
// Fortran side instead of parsing garbage.
//
// # Key Features
//
//   - Framed records for arrays of rank 1 to 3 (int32, int64, float32, float64)
//   - Single precision narrowing (float64 data written as float32 payloads)
//   - Unframed scalar and string primitives for headers and annotations
//   - Cart3D triangulation writers (binary and ASCII) in the tri package
//   - PLOT3D multi-grid writers in the plot3d package
//   - Atomic file saves with fsync and rename
//   - Artifact stores (local, in-memory, S3, MinIO) with manifest tracking
//   - Structured logging (slog) and pluggable metrics
package fortgo
