// Package record writes Fortran-style unformatted sequential records:
// a length marker, the payload, then the identical marker again. Both
// markers carry the payload byte count in the record's byte order;
// their symmetry is the only self-check the format offers, so a
// failed payload write aborts the record without a trailing marker
// rather than leaving markers that disagree.
package record

import (
	"fmt"
	"io"
	"math"
)

// scratchSize is the chunk buffer for payload encoding. It must be a
// multiple of 8 so chunk boundaries never split an element.
const scratchSize = 32 * 1024

// Writer emits records to an underlying stream. It keeps no state
// between records; the host byte order is probed on every operation.
//
// A Writer assumes exclusive access to its stream for the duration of
// each call. Concurrent writes to the same stream are out of
// contract.
type Writer struct {
	w       io.Writer
	opts    Options
	scratch []byte
}

// NewWriter creates a Writer on top of w.
func NewWriter(w io.Writer, optFns ...func(o *Options)) (*Writer, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MarkerWidth != MarkerWidth32 && opts.MarkerWidth != MarkerWidth64 {
		return nil, fmt.Errorf("invalid marker width: %d (must be %d or %d)", opts.MarkerWidth, MarkerWidth32, MarkerWidth64)
	}

	if opts.ByteOrder < Native || opts.ByteOrder > Little {
		return nil, fmt.Errorf("invalid byte order: %d", opts.ByteOrder)
	}

	return &Writer{
		w:       w,
		opts:    opts,
		scratch: make([]byte, scratchSize),
	}, nil
}

// Options returns the writer's configuration.
func (w *Writer) Options() Options {
	return w.opts
}

// WriteInt32 writes v in the writer's byte order, unframed.
func (w *Writer) WriteInt32(v int32) error {
	var buf [4]byte
	w.opts.ByteOrder.Resolve().PutUint32(buf[:], uint32(v))

	if err := w.write(buf[:]); err != nil {
		return fmt.Errorf("failed to write int32: %w", err)
	}
	return nil
}

// WriteInt64 writes v in the writer's byte order, unframed.
func (w *Writer) WriteInt64(v int64) error {
	var buf [8]byte
	w.opts.ByteOrder.Resolve().PutUint64(buf[:], uint64(v))

	if err := w.write(buf[:]); err != nil {
		return fmt.Errorf("failed to write int64: %w", err)
	}
	return nil
}

// WriteFloat32 writes v in the writer's byte order, unframed.
func (w *Writer) WriteFloat32(v float32) error {
	var buf [4]byte
	w.opts.ByteOrder.Resolve().PutUint32(buf[:], math.Float32bits(v))

	if err := w.write(buf[:]); err != nil {
		return fmt.Errorf("failed to write float32: %w", err)
	}
	return nil
}

// WriteFloat64 writes v in the writer's byte order, unframed.
func (w *Writer) WriteFloat64(v float64) error {
	var buf [8]byte
	w.opts.ByteOrder.Resolve().PutUint64(buf[:], math.Float64bits(v))

	if err := w.write(buf[:]); err != nil {
		return fmt.Errorf("failed to write float64: %w", err)
	}
	return nil
}

// WriteString writes s as one int32 per byte followed by an int32
// zero terminator, unframed. Legacy readers scan for the terminator
// instead of trusting a length.
func (w *Writer) WriteString(s string) error {
	order := w.opts.ByteOrder.Resolve()

	var buf [4]byte
	for i := 0; i < len(s); i++ {
		order.PutUint32(buf[:], uint32(s[i]))
		if err := w.write(buf[:]); err != nil {
			return fmt.Errorf("failed to write string: %w", err)
		}
	}

	order.PutUint32(buf[:], 0)
	if err := w.write(buf[:]); err != nil {
		return fmt.Errorf("failed to write string: %w", err)
	}
	return nil
}

// Write passes p through to the stream unchanged. Inside a Frame
// body it counts toward the payload; it exists for payloads that are
// already encoded.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Frame writes one record: the length marker, the payload produced by
// body, then the identical trailing marker. size is the exact payload
// byte count and must be known up front; body receives a writer whose
// output counts toward the payload and may use the full Writer API.
// When body fails or writes a byte count other than size, the record
// is aborted without a trailing marker and the stream is left
// mid-record.
func (w *Writer) Frame(size int, body func(fw *Writer) error) error {
	if err := w.checkMarker(size); err != nil {
		return err
	}

	if err := w.writeMarker(size); err != nil {
		return err
	}

	cw := &countingWriter{w: w.w}
	inner := *w
	inner.w = cw

	if err := body(&inner); err != nil {
		return err
	}

	if cw.n != int64(size) {
		return fmt.Errorf("record payload wrote %d bytes, want %d", cw.n, size)
	}

	return w.writeMarker(size)
}

// checkMarker validates a payload size against the marker range
// before anything is written.
func (w *Writer) checkMarker(size int) error {
	if size < 0 {
		return fmt.Errorf("negative record size: %d", size)
	}

	if w.opts.MarkerWidth == MarkerWidth32 && int64(size) > math.MaxInt32 {
		return &SizeOverflowError{Size: int64(size), MarkerWidth: w.opts.MarkerWidth}
	}

	return nil
}

// payloadSize computes count*elemSize and validates it against the
// marker range.
func (w *Writer) payloadSize(count, elemSize int) (int, error) {
	size := int64(count) * int64(elemSize)

	if w.opts.MarkerWidth == MarkerWidth32 && size > math.MaxInt32 {
		return 0, &SizeOverflowError{Size: size, MarkerWidth: w.opts.MarkerWidth}
	}

	return int(size), nil
}

func (w *Writer) writeMarker(size int) error {
	order := w.opts.ByteOrder.Resolve()

	var buf [MarkerWidth64]byte
	if w.opts.MarkerWidth == MarkerWidth64 {
		order.PutUint64(buf[:], uint64(size))
	} else {
		order.PutUint32(buf[:], uint32(size))
	}

	if err := w.write(buf[:w.opts.MarkerWidth]); err != nil {
		return fmt.Errorf("failed to write record marker: %w", err)
	}
	return nil
}

// write pushes p to the underlying stream, turning a contract-
// violating short write without an error into io.ErrShortWrite.
func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	if err != nil {
		return err
	}

	if n < len(p) {
		return io.ErrShortWrite
	}

	return nil
}

// countingWriter tracks how many bytes a frame body actually wrote.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
