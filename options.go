package fortgo

import (
	"log/slog"

	"github.com/hupe1980/fortgo/internal/fs"
	"github.com/hupe1980/fortgo/record"
)

type options struct {
	byteOrder        record.ByteOrder
	markerWidth      int
	recordOptions    []func(*record.Options)
	bufferSize       int
	fsys             fs.FileSystem
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Create and Save behavior.
//
// Options exist to avoid exploding the API surface with per-variant
// constructors (big-endian Create, wide-marker Create, and so on).
type Option func(*options)

// WithByteOrder configures the byte order of markers and payloads.
//
// The default is record.Native. Files consumed by big-endian Fortran
// builds (common on legacy HPC systems) typically want record.Big.
func WithByteOrder(order record.ByteOrder) Option {
	return func(o *options) {
		o.byteOrder = order
	}
}

// WithEnvByteOrder picks the byte order from the Fortran runtime
// environment variables F_UFMTENDIAN and GFORTRAN_CONVERT_UNIT.
//
// This matches the order a Fortran consumer in the same environment
// would expect. If neither variable selects an order, the host order
// is used.
func WithEnvByteOrder() Option {
	return func(o *options) {
		o.byteOrder = record.FromEnv()
	}
}

// WithMarkerWidth configures the width of record length markers in
// bytes. Valid widths are record.MarkerWidth32 (the default) and
// record.MarkerWidth64 for consumers compiled with 8-byte record
// lengths.
func WithMarkerWidth(width int) Option {
	return func(o *options) {
		o.markerWidth = width
	}
}

// WithRecordOptions passes additional options through to the underlying
// record writer. Use it for settings without a dedicated Option, such
// as legacy quirk flags.
//
// Example:
//
//	f, _ := fortgo.Create("out.bin",
//	    fortgo.WithByteOrder(record.Big),
//	    fortgo.WithRecordOptions(func(ro *record.Options) {
//	        ro.SinglePrecisionRank3 = true
//	    }))
func WithRecordOptions(optFns ...func(*record.Options)) Option {
	return func(o *options) {
		o.recordOptions = append(o.recordOptions, optFns...)
	}
}

// WithBufferSize configures the write buffer size in bytes.
//
// The default is 256KB, which batches the many small marker and scalar
// writes a record stream produces. Values below 4KB are raised to 4KB.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size < 4*1024 {
			size = 4 * 1024
		}
		o.bufferSize = size
	}
}

// WithFileSystem configures the file system used by Create and Save.
//
// The default is the local file system. Tests use this to inject fault
// injecting file systems.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fsys = fsys
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fortgo.BasicMetricsCollector{}
//	f, _ := fortgo.Create("out.bin", fortgo.WithMetricsCollector(metrics))
//	// ... write records ...
//	stats := metrics.GetStats()
//	fmt.Printf("Records: %d, Avg latency: %dns\n", stats.WriteCount, stats.WriteAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := fortgo.NewJSONLogger(slog.LevelInfo)
//	f, _ := fortgo.Create("out.bin", fortgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		byteOrder:        record.Native,
		markerWidth:      record.MarkerWidth32,
		bufferSize:       256 * 1024,
		fsys:             fs.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
