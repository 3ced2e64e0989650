package record

// Marker widths supported for record framing.
const (
	// MarkerWidth32 frames records with 4-byte length markers, the
	// classic Fortran unformatted convention.
	MarkerWidth32 = 4
	// MarkerWidth64 frames records with 8-byte length markers,
	// allowing payloads beyond 2 GiB.
	MarkerWidth64 = 8
)

// Options contains configuration for a Writer.
type Options struct {
	// ByteOrder selects the byte order of length markers and payload
	// elements.
	ByteOrder ByteOrder

	// MarkerWidth is the width of the record length markers in bytes,
	// MarkerWidth32 or MarkerWidth64.
	MarkerWidth int

	// SinglePrecisionRank3 reproduces a defect in the legacy tooling
	// this format comes from: rank-3 float64 records requested in an
	// explicit Big or Little order were narrowed to float32 on disk,
	// markers included. Native and Swapped records were unaffected.
	// Leave false to write correct double-precision records; set it
	// only to compare output byte-for-byte against historical files.
	SinglePrecisionRank3 bool
}

// DefaultOptions returns default writer options.
var DefaultOptions = Options{
	ByteOrder:   Native,
	MarkerWidth: MarkerWidth32,
}
