package fortgo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/internal/fs"
	"github.com/hupe1980/fortgo/record"
)

// File is an open record file. Records are buffered in memory and
// flushed on Close.
//
// File is not safe for concurrent use.
type File struct {
	name    string
	fsys    fs.FileSystem
	file    fs.File
	buf     *bufio.Writer
	rw      *record.Writer
	logger  *Logger
	metrics MetricsCollector
	closed  bool
}

// Create creates or truncates the named file and returns a File ready
// for records.
func Create(name string, optFns ...Option) (*File, error) {
	o := applyOptions(optFns)

	f, err := o.fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}

	buf := bufio.NewWriterSize(f, o.bufferSize)

	rw, err := record.NewWriter(buf, recordOptFns(o)...)
	if err != nil {
		_ = f.Close()
		_ = o.fsys.Remove(name)
		return nil, err
	}

	return &File{
		name:    name,
		fsys:    o.fsys,
		file:    f,
		buf:     buf,
		rw:      rw,
		logger:  o.logger.WithFile(name),
		metrics: o.metricsCollector,
	}, nil
}

// recordOptFns translates facade options into record writer options.
// User-supplied record options apply last so they win over the
// dedicated fields.
func recordOptFns(o options) []func(*record.Options) {
	fns := make([]func(*record.Options), 0, len(o.recordOptions)+1)
	fns = append(fns, func(ro *record.Options) {
		ro.ByteOrder = o.byteOrder
		ro.MarkerWidth = o.markerWidth
	})
	return append(fns, o.recordOptions...)
}

// Name returns the file name passed to Create.
func (f *File) Name() string {
	return f.name
}

// Writer returns the underlying record writer for composing with
// packages that write record streams directly, such as tri and plot3d.
//
// The writer bypasses the closed-file guard. Do not use it after Close.
func (f *File) Writer() *record.Writer {
	return f.rw
}

// Frame writes one framed record whose payload is produced by body.
// See record.Writer.Frame for the framing contract.
func (f *File) Frame(size int, body func(w *record.Writer) error) error {
	if f.closed {
		return ErrClosed
	}
	return f.rw.Frame(size, body)
}

// WriteInt32 writes v unframed in the file's byte order.
func (f *File) WriteInt32(v int32) error {
	if f.closed {
		return ErrClosed
	}
	return f.rw.WriteInt32(v)
}

// WriteInt64 writes v unframed in the file's byte order.
func (f *File) WriteInt64(v int64) error {
	if f.closed {
		return ErrClosed
	}
	return f.rw.WriteInt64(v)
}

// WriteFloat32 writes v unframed in the file's byte order.
func (f *File) WriteFloat32(v float32) error {
	if f.closed {
		return ErrClosed
	}
	return f.rw.WriteFloat32(v)
}

// WriteFloat64 writes v unframed in the file's byte order.
func (f *File) WriteFloat64(v float64) error {
	if f.closed {
		return ErrClosed
	}
	return f.rw.WriteFloat64(v)
}

// WriteString writes s unframed as one int32 per byte plus an int32
// zero terminator.
func (f *File) WriteString(s string) error {
	if f.closed {
		return ErrClosed
	}
	return f.rw.WriteString(s)
}

// WriteRaw writes vals unframed in the file's byte order.
func WriteRaw[T record.Element](f *File, vals []T) error {
	if f.closed {
		return ErrClosed
	}
	return record.WriteRaw(f.rw, vals)
}

// WriteRawSingle writes float64 values unframed, each narrowed to
// float32.
func WriteRawSingle(f *File, vals []float64) error {
	if f.closed {
		return ErrClosed
	}
	return record.WriteRawSingle(f.rw, vals)
}

// WriteRecord writes a as one framed record to f.
//
// The array may have rank 1, 2 or 3. Elements are written in row-major
// order in the byte order configured at Create.
func WriteRecord[T record.Element](f *File, a *array.Array[T]) error {
	if f.closed {
		return ErrClosed
	}

	start := time.Now()
	err := record.Write(f.rw, a)
	f.metrics.RecordWrite(a.Len(), time.Since(start), err)
	f.logger.LogWrite(a.Len(), err)

	return err
}

// WriteRecordSingle writes a as one framed record of float32 payloads,
// narrowing each float64 element.
func WriteRecordSingle(f *File, a *array.Array[float64]) error {
	if f.closed {
		return ErrClosed
	}

	start := time.Now()
	err := record.WriteSingle(f.rw, a)
	f.metrics.RecordWrite(a.Len(), time.Since(start), err)
	f.logger.LogWrite(a.Len(), err)

	return err
}

// Save writes a record file atomically. The write callback produces the
// file contents; on success the target is replaced in one rename, on
// failure the target is left untouched.
func Save(name string, write func(w *record.Writer) error, optFns ...Option) error {
	o := applyOptions(optFns)

	start := time.Now()
	size, err := saveAtomic(o, name, write)
	o.metricsCollector.RecordSave(size, time.Since(start), err)
	o.logger.LogSave(name, size, err)

	return err
}

func saveAtomic(o options, name string, write func(w *record.Writer) error) (int64, error) {
	dir := filepath.Dir(name)
	base := filepath.Base(name)

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, tmpName, err := o.fsys.TempFile(dir, base+".tmp-*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if tmpName != "" {
			_ = tmp.Close()
			_ = o.fsys.Remove(tmpName)
		}
	}()

	// Use buffered writer to batch writes (critical for performance)
	buf := bufio.NewWriterSize(tmp, o.bufferSize)

	rw, err := record.NewWriter(buf, recordOptFns(o)...)
	if err != nil {
		return 0, err
	}

	if err := write(rw); err != nil {
		return 0, err
	}
	if err := buf.Flush(); err != nil {
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}

	info, err := tmp.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()

	if err := tmp.Close(); err != nil {
		return 0, err
	}

	// Atomically replace target.
	if err := o.fsys.Rename(tmpName, name); err != nil {
		return 0, err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	_ = fs.SyncDir(o.fsys, dir)

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return size, nil
}
