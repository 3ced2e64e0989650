//go:build linux

package fs

import "golang.org/x/sys/unix"

// Datasync flushes a file's data without forcing a metadata write
// where the platform exposes fdatasync, falling back to a full Sync
// for wrapped files that hide their descriptor.
func Datasync(f File) error {
	if ff, ok := f.(interface{ Fd() uintptr }); ok {
		return unix.Fdatasync(int(ff.Fd()))
	}
	return f.Sync()
}
