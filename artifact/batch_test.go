package artifact

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fortgo/internal/fs"
)

func TestPutAll(t *testing.T) {
	store := NewMemoryStore()

	files := map[string]io.Reader{
		"case/surf.tri": strings.NewReader("tri"),
		"case/grid.p3d": strings.NewReader("grid"),
		"case/run.log":  strings.NewReader("log"),
	}

	require.NoError(t, PutAll(context.Background(), store, files, 2))

	names, err := store.List(context.Background(), "case/")
	require.NoError(t, err)
	assert.Equal(t, []string{"case/grid.p3d", "case/run.log", "case/surf.tri"}, names)
}

func TestPutAll_ZeroLimit(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, PutAll(context.Background(), store, map[string]io.Reader{
		"a": strings.NewReader("a"),
	}, 0))

	ok, err := store.Exists(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
}

// failingStore fails every put for names with a given prefix.
type failingStore struct {
	*MemoryStore
	failPrefix string
}

var errPutRejected = errors.New("put rejected")

func (s *failingStore) Put(ctx context.Context, name string, r io.Reader) error {
	if strings.HasPrefix(name, s.failPrefix) {
		return errPutRejected
	}
	return s.MemoryStore.Put(ctx, name, r)
}

func TestPutAll_FirstErrorWins(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failPrefix: "bad/"}

	err := PutAll(context.Background(), store, map[string]io.Reader{
		"good/a": strings.NewReader("a"),
		"bad/b":  strings.NewReader("b"),
	}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, errPutRejected)
	assert.Contains(t, err.Error(), "bad/b")
}

func TestPutFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "surf.tri")
	require.NoError(t, os.WriteFile(path, []byte("surface"), 0644))

	store := NewMemoryStore()
	err := PutFiles(context.Background(), store, fs.Default, map[string]string{
		"case/surf.tri": path,
	}, 4)
	require.NoError(t, err)

	rc, err := store.Get(context.Background(), "case/surf.tri")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "surface", string(data))
}

func TestPutFiles_MissingFile(t *testing.T) {
	store := NewMemoryStore()

	err := PutFiles(context.Background(), store, fs.Default, map[string]string{
		"x": filepath.Join(t.TempDir(), "nope"),
	}, 1)
	assert.Error(t, err)
}
