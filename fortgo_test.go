package fortgo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/internal/fs"
	"github.com/hupe1980/fortgo/record"
)

func TestCreateWriteClose(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name, WithByteOrder(record.Big))
	require.NoError(t, err)

	a, err := array.New([]int32{258, -1}, 2)
	require.NoError(t, err)
	require.NoError(t, WriteRecord(f, a))

	// Unframed scalar after the record.
	require.NoError(t, f.Writer().WriteInt32(7))

	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x01, 0x02,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x00, 0x07,
	}
	assert.Equal(t, want, got)
}

func TestCreateInvalidOptions(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	_, err := Create(name, WithMarkerWidth(3))
	require.Error(t, err)

	// The half-created file must not be left behind.
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteRecordSingle(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name, WithByteOrder(record.Big))
	require.NoError(t, err)

	a, err := array.New([]float64{1.5}, 1)
	require.NoError(t, err)
	require.NoError(t, WriteRecordSingle(f, a))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x04,
		0x3F, 0xC0, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x04,
	}
	assert.Equal(t, want, got)
}

func TestFrame(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name, WithByteOrder(record.Big), WithBufferSize(1))
	require.NoError(t, err)

	err = f.Frame(8, func(w *record.Writer) error {
		if err := w.WriteInt32(1); err != nil {
			return err
		}
		return w.WriteFloat32(1.0)
	})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x00, 0x01,
		0x3F, 0x80, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x08,
	}
	assert.Equal(t, want, got)
}

func TestEnvByteOrder(t *testing.T) {
	t.Setenv("F_UFMTENDIAN", "big")
	t.Setenv("GFORTRAN_CONVERT_UNIT", "")

	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name, WithEnvByteOrder())
	require.NoError(t, err)

	a, err := array.New([]int32{1}, 1)
	require.NoError(t, err)
	require.NoError(t, WriteRecord(f, a))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x04,
	}
	assert.Equal(t, want, got)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.bin")

	a, err := array.New([]float64{1.0}, 1)
	require.NoError(t, err)

	err = Save(name, func(w *record.Writer) error {
		return record.Write(w, a)
	}, WithByteOrder(record.Big))
	require.NoError(t, err)

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x08,
		0x3F, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x08,
	}
	assert.Equal(t, want, got)

	// No temp files may remain after a successful save.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.bin", entries[0].Name())
}

func TestSaveWriteError(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.bin")

	wantErr := errors.New("boom")
	err := Save(name, func(w *record.Writer) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Neither the target nor a temp file may exist.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveOverwrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(name, []byte("stale"), 0644))

	a, err := array.New([]int32{1}, 1)
	require.NoError(t, err)

	err = Save(name, func(w *record.Writer) error {
		return record.Write(w, a)
	}, WithByteOrder(record.Little))
	require.NoError(t, err)

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x04, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x04, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, got)
}

func TestSaveFaultyDisk(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.bin")

	injected := errors.New("disk full")
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("out.bin", fs.Fault{FailAfterBytes: 4, Err: injected})

	a, err := array.New([]float64{1.0}, 1)
	require.NoError(t, err)

	err = Save(name, func(w *record.Writer) error {
		return record.Write(w, a)
	}, WithFileSystem(ffs))
	require.ErrorIs(t, err, injected)

	// The target must not exist and the temp file must be cleaned up.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file: %s", e.Name())
	}
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveFaultySync(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.bin")

	injected := errors.New("sync failed")
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: -1, FailOnSync: true, Err: injected})

	err := Save(name, func(w *record.Writer) error {
		return w.WriteInt32(1)
	}, WithFileSystem(ffs))
	require.ErrorIs(t, err, injected)

	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}

func TestMetrics(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	metrics := &BasicMetricsCollector{}

	f, err := Create(name, WithByteOrder(record.Big), WithMetricsCollector(metrics))
	require.NoError(t, err)

	a, err := array.New([]int32{1, 2, 3}, 3)
	require.NoError(t, err)
	require.NoError(t, WriteRecord(f, a))
	require.NoError(t, WriteRecord(f, a))
	require.NoError(t, f.Close())

	err = Save(name, func(w *record.Writer) error {
		return record.Write(w, a)
	}, WithMetricsCollector(metrics))
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.WriteCount)
	assert.Equal(t, int64(6), stats.WriteElements)
	assert.Equal(t, int64(0), stats.WriteErrors)
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(20), stats.SaveBytes)
	assert.Equal(t, int64(0), stats.SaveErrors)
}

func TestWideMarkers(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name,
		WithByteOrder(record.Big),
		WithMarkerWidth(record.MarkerWidth64),
	)
	require.NoError(t, err)

	a, err := array.New([]int32{1}, 1)
	require.NoError(t, err)
	require.NoError(t, WriteRecord(f, a))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04,
	}
	assert.Equal(t, want, got)
}

func TestRecordOptionsPassthrough(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name,
		WithByteOrder(record.Big),
		WithRecordOptions(func(ro *record.Options) {
			ro.SinglePrecisionRank3 = true
		}),
	)
	require.NoError(t, err)

	a, err := array.New([]float64{1.0}, 1, 1, 1)
	require.NoError(t, err)
	require.NoError(t, WriteRecord(f, a))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	// Rank-3 float64 with the legacy flag narrows to float32 payloads.
	want := []byte{
		0x00, 0x00, 0x00, 0x04,
		0x3F, 0x80, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x04,
	}
	assert.Equal(t, want, got)
}

func TestFileScalarWriters(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name, WithByteOrder(record.Big))
	require.NoError(t, err)

	require.NoError(t, f.WriteInt32(1))
	require.NoError(t, f.WriteInt64(2))
	require.NoError(t, f.WriteFloat32(1.0))
	require.NoError(t, f.WriteFloat64(1.0))
	require.NoError(t, f.WriteString("A"))
	require.NoError(t, WriteRaw(f, []int32{3}))
	require.NoError(t, WriteRawSingle(f, []float64{1.5}))
	require.NoError(t, f.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
		0x3F, 0x80, 0x00, 0x00,
		0x3F, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x41, // 'A'
		0x00, 0x00, 0x00, 0x00, // terminator
		0x00, 0x00, 0x00, 0x03,
		0x3F, 0xC0, 0x00, 0x00,
	}
	assert.Equal(t, want, got)
}

func TestFileScalarWritersAfterClose(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.bin")

	f, err := Create(name)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.ErrorIs(t, f.WriteInt32(1), ErrClosed)
	assert.ErrorIs(t, f.WriteString("x"), ErrClosed)
	assert.ErrorIs(t, WriteRaw(f, []int32{1}), ErrClosed)
	assert.ErrorIs(t, WriteRawSingle(f, []float64{1}), ErrClosed)
}
