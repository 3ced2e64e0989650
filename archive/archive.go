// Package archive bundles case output files into a tar stream, with
// optional compression, so a finished run can be shipped or shelved as
// a single artifact.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/fortgo/internal/fs"
)

// Compression selects the stream compressor wrapped around the tar
// output.
type Compression uint8

const (
	// CompressionNone writes a plain tar stream.
	CompressionNone Compression = 0
	// CompressionLZ4 favors speed over ratio, good for large binary
	// meshes that are re-read often.
	CompressionLZ4 Compression = 1
	// CompressionZstd favors ratio, good for long-term storage.
	CompressionZstd Compression = 2
)

// Extension returns the conventional file extension for an archive
// with this compression, including the leading dot.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".tar.lz4"
	case CompressionZstd:
		return ".tar.zst"
	default:
		return ".tar"
	}
}

// Options configures an archive writer.
type Options struct {
	// Compression is the stream compressor. Defaults to Zstd.
	Compression Compression

	// ZstdLevel is the zstd compression level (1-22, zstd scale).
	// Only consulted for CompressionZstd. Defaults to 3.
	ZstdLevel int
}

// DefaultOptions are sensible archive defaults.
var DefaultOptions = Options{
	Compression: CompressionZstd,
	ZstdLevel:   3,
}

// Writer writes files into a compressed tar stream.
//
// Writer is not safe for concurrent use.
type Writer struct {
	tw     *tar.Writer
	comp   io.Closer // compressor, nil for CompressionNone
	closed bool
}

// NewWriter creates an archive writer on top of w. The caller owns w
// and closes it after Close returns.
func NewWriter(w io.Writer, optFns ...func(o *Options)) (*Writer, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	switch opts.Compression {
	case CompressionNone:
		return &Writer{tw: tar.NewWriter(w)}, nil
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		return &Writer{tw: tar.NewWriter(lw), comp: lw}, nil
	case CompressionZstd:
		level := zstd.EncoderLevelFromZstd(opts.ZstdLevel)
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return &Writer{tw: tar.NewWriter(zw), comp: zw}, nil
	default:
		return nil, fmt.Errorf("unknown compression: %d", opts.Compression)
	}
}

// Add writes data as the archive entry name.
func (w *Writer) Add(name string, data []byte) error {
	if w.closed {
		return os.ErrClosed
	}

	hdr := &tar.Header{
		Name:    name,
		Mode:    0644,
		Size:    int64(len(data)),
		ModTime: time.Now().UTC(),
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	if _, err := w.tw.Write(data); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", name, err)
	}
	return nil
}

// AddFile copies the file at path from fsys into the archive under
// the entry name.
func (w *Writer) AddFile(fsys fs.FileSystem, path, name string) error {
	if w.closed {
		return os.ErrClosed
	}

	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	hdr := &tar.Header{
		Name:    name,
		Mode:    0644,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	if _, err := io.Copy(w.tw, f); err != nil {
		return fmt.Errorf("failed to copy %s: %w", path, err)
	}
	return nil
}

// Close finalizes the tar stream and flushes the compressor. It does
// not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.tw.Close(); err != nil {
		return err
	}
	if w.comp != nil {
		return w.comp.Close()
	}
	return nil
}
