package fortgo

// Flush flushes buffered records to the underlying file without
// closing it.
func (f *File) Flush() error {
	if f.closed {
		return ErrClosed
	}
	return f.buf.Flush()
}

// Close flushes buffered records, syncs and closes the underlying file.
//
// Close is idempotent. Calling it on a nil or already closed File
// returns nil.
func (f *File) Close() error {
	if f == nil || f.closed {
		return nil
	}
	f.closed = true

	var firstErr error
	if err := f.buf.Flush(); err != nil {
		firstErr = err
	}
	if err := f.file.Sync(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := f.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	f.logger.LogClose(f.name, firstErr)
	return firstErr
}
