package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/fortgo/internal/fs"
)

// PutAll uploads every named reader to the store with at most limit
// concurrent puts. The first failure cancels the remaining uploads and
// is returned; already-finished puts are not rolled back.
func PutAll(ctx context.Context, store Store, files map[string]io.Reader, limit int) error {
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	// Deterministic upload order keeps logs and failures reproducible.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := files[name]
		g.Go(func() error {
			if err := store.Put(ctx, name, r); err != nil {
				return fmt.Errorf("failed to put %s: %w", name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// PutFiles uploads local files to the store with bounded concurrency.
// The map is store name to local path.
func PutFiles(ctx context.Context, store Store, fsys fs.FileSystem, files map[string]string, limit int) error {
	if fsys == nil {
		fsys = fs.Default
	}
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := files[name]
		g.Go(func() error {
			f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			if err := store.Put(ctx, name, f); err != nil {
				return fmt.Errorf("failed to put %s: %w", name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
