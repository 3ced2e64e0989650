package record

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/endian"
)

// Element is the set of element types a record can carry.
type Element interface {
	int32 | int64 | float32 | float64
}

// Write emits the array as one framed record: the length marker, the
// row-major element stream in the writer's byte order, then the
// identical trailing marker. The rank must be 1, 2 or 3; rank and
// size validation happen before any byte reaches the stream, so a
// failed validation leaves the stream clean. Zero-extent arrays
// produce a valid empty record.
func Write[T Element](w *Writer, a *array.Array[T]) error {
	if err := checkRank(a.Rank()); err != nil {
		return err
	}

	// Legacy writers narrowed explicit-order rank-3 float64 records;
	// see Options.SinglePrecisionRank3.
	if w.opts.SinglePrecisionRank3 && a.Rank() == 3 && w.opts.ByteOrder.explicit() {
		if vals, ok := any(a.Data()).([]float64); ok {
			return frameSingle(w, vals)
		}
	}

	return frameElems(w, a.Data())
}

// Write1D writes a rank-1 record. Any other rank fails with
// WrongRankError before a byte is written.
func Write1D[T Element](w *Writer, a *array.Array[T]) error {
	return writeRank(w, a, 1)
}

// Write2D writes a rank-2 record. Any other rank fails with
// WrongRankError before a byte is written.
func Write2D[T Element](w *Writer, a *array.Array[T]) error {
	return writeRank(w, a, 2)
}

// Write3D writes a rank-3 record. Any other rank fails with
// WrongRankError before a byte is written.
func Write3D[T Element](w *Writer, a *array.Array[T]) error {
	return writeRank(w, a, 3)
}

// WriteSingle emits a float64 array as one framed record with a
// float32 payload, narrowing each element with Go's float32
// conversion (round to nearest, ties to even). The length markers
// carry the narrowed payload size.
func WriteSingle(w *Writer, a *array.Array[float64]) error {
	if err := checkRank(a.Rank()); err != nil {
		return err
	}
	return frameSingle(w, a.Data())
}

// WriteSingle1D is WriteSingle restricted to rank 1.
func WriteSingle1D(w *Writer, a *array.Array[float64]) error {
	return writeSingleRank(w, a, 1)
}

// WriteSingle2D is WriteSingle restricted to rank 2.
func WriteSingle2D(w *Writer, a *array.Array[float64]) error {
	return writeSingleRank(w, a, 2)
}

// WriteSingle3D is WriteSingle restricted to rank 3.
func WriteSingle3D(w *Writer, a *array.Array[float64]) error {
	return writeSingleRank(w, a, 3)
}

// WriteRaw emits the elements unframed in the writer's byte order.
// Composite formats use it to assemble payloads framed at a coarser
// granularity, typically inside Frame.
func WriteRaw[T Element](w *Writer, vals []T) error {
	return encodeElems(w, vals)
}

// WriteRawSingle emits float64 values unframed, each narrowed to
// float32 first.
func WriteRawSingle(w *Writer, vals []float64) error {
	return w.encodeSingle(vals)
}

func writeRank[T Element](w *Writer, a *array.Array[T], want int) error {
	if a.Rank() != want {
		return &WrongRankError{Rank: a.Rank(), Want: want}
	}
	return Write(w, a)
}

func writeSingleRank(w *Writer, a *array.Array[float64], want int) error {
	if a.Rank() != want {
		return &WrongRankError{Rank: a.Rank(), Want: want}
	}
	return frameSingle(w, a.Data())
}

func checkRank(rank int) error {
	if rank < 1 || rank > 3 {
		return &WrongRankError{Rank: rank}
	}
	return nil
}

func frameElems[T Element](w *Writer, vals []T) error {
	var zero T

	size, err := w.payloadSize(len(vals), int(unsafe.Sizeof(zero)))
	if err != nil {
		return err
	}

	return w.Frame(size, func(fw *Writer) error {
		return encodeElems(fw, vals)
	})
}

func frameSingle(w *Writer, vals []float64) error {
	size, err := w.payloadSize(len(vals), 4)
	if err != nil {
		return err
	}

	return w.Frame(size, func(fw *Writer) error {
		return fw.encodeSingle(vals)
	})
}

// encodeElems streams vals in the writer's byte order. When the
// resolved order matches the host, the in-memory representation is
// already the wire representation and is written in bulk; otherwise
// chunks are copied into the scratch buffer and each element is
// reversed in place before writing.
func encodeElems[T Element](w *Writer, vals []T) error {
	if len(vals) == 0 {
		return nil
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*elemSize)

	if w.opts.ByteOrder.Resolve() == endian.Native() {
		if err := w.write(raw); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
		return nil
	}

	for off := 0; off < len(raw); off += len(w.scratch) {
		chunk := w.scratch[:min(len(w.scratch), len(raw)-off)]
		copy(chunk, raw[off:])

		switch elemSize {
		case 4:
			for i := 0; i < len(chunk); i += 4 {
				endian.Swap4(chunk[i:])
			}
		default:
			for i := 0; i < len(chunk); i += 8 {
				endian.Swap8(chunk[i:])
			}
		}

		if err := w.write(chunk); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
	}

	return nil
}

// encodeSingle streams float64 values as float32, narrowing through
// the scratch buffer one chunk at a time.
func (w *Writer) encodeSingle(vals []float64) error {
	order := w.opts.ByteOrder.Resolve()

	for off := 0; off < len(vals); {
		n := min(len(w.scratch)/4, len(vals)-off)
		buf := w.scratch[:n*4]

		for i := 0; i < n; i++ {
			order.PutUint32(buf[i*4:], math.Float32bits(float32(vals[off+i])))
		}

		if err := w.write(buf); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}

		off += n
	}

	return nil
}
