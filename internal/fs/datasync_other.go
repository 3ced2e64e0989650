//go:build !linux

package fs

// Datasync flushes a file's data. Platforms without fdatasync get a
// full Sync.
func Datasync(f File) error {
	return f.Sync()
}
