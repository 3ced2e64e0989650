package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hupe1980/fortgo"
	"github.com/hupe1980/fortgo/archive"
	"github.com/hupe1980/fortgo/array"
	"github.com/hupe1980/fortgo/artifact"
	"github.com/hupe1980/fortgo/internal/fs"
	"github.com/hupe1980/fortgo/manifest"
	"github.com/hupe1980/fortgo/plot3d"
	"github.com/hupe1980/fortgo/record"
	"github.com/hupe1980/fortgo/tri"
)

func main() {
	dir, err := os.MkdirTemp("", "fortgo-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// A unit tetrahedron: 4 nodes, 4 faces.
	nodes, _ := array.From2D([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	tris, _ := array.From2D([][]int32{
		{1, 3, 2},
		{1, 2, 4},
		{2, 3, 4},
		{1, 4, 3},
	})
	mesh := &tri.Triangulation{Nodes: nodes, Tris: tris}

	triPath := filepath.Join(dir, "tet.tri")
	f, err := os.Create(triPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := tri.WriteBinary(f, mesh); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d nodes, %d tris, big-endian records)\n", triPath, mesh.NNode(), mesh.NTri())

	// A 3x3x2 structured zone.
	grid := plot3d.Grid{J: 3, K: 3, L: 2}
	for l := 0; l < 2; l++ {
		for k := 0; k < 3; k++ {
			for j := 0; j < 3; j++ {
				grid.X = append(grid.X, float64(j)/2)
				grid.Y = append(grid.Y, float64(k)/2)
				grid.Z = append(grid.Z, float64(l))
			}
		}
	}

	gridPath := filepath.Join(dir, "box.p3d")
	gf, err := os.Create(gridPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := plot3d.Write(gf, &plot3d.X{Grids: []plot3d.Grid{grid}}); err != nil {
		log.Fatal(err)
	}
	if err := gf.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d points, little-endian records)\n", gridPath, grid.Points())

	// An atomically-saved raw record file of solution residuals.
	residuals, _ := array.New([]float64{1.0, 0.31, 0.044, 0.0071}, 4)
	residPath := filepath.Join(dir, "resid.dat")
	if err := fortgo.Save(residPath, func(w *record.Writer) error {
		return record.Write(w, residuals)
	}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (atomic save)\n", residPath)

	// Track the case files in a manifest with checksums.
	store := manifest.NewStore(fs.Default, dir)
	m, err := store.Load()
	if err != nil {
		log.Fatal(err)
	}
	m.Case = "example"
	for name, format := range map[string]string{
		"tet.tri":   "tri-b4",
		"box.p3d":   "plot3d-lb8",
		"resid.dat": "record-ne8",
	} {
		if err := store.AddFile(m, name, format, 0); err != nil {
			log.Fatal(err)
		}
	}
	if err := store.Save(m); err != nil {
		log.Fatal(err)
	}
	if err := store.Verify(m); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("manifest v%d verified (%d artifacts)\n", m.ID, len(m.Artifacts))

	// Bundle the case and publish it.
	bundlePath := filepath.Join(dir, "case"+archive.CompressionZstd.Extension())
	bundle, err := os.Create(bundlePath)
	if err != nil {
		log.Fatal(err)
	}
	aw, err := archive.NewWriter(bundle)
	if err != nil {
		log.Fatal(err)
	}
	for _, name := range []string{"tet.tri", "box.p3d", "resid.dat"} {
		if err := aw.AddFile(fs.Default, filepath.Join(dir, name), "example/"+name); err != nil {
			log.Fatal(err)
		}
	}
	if err := aw.Close(); err != nil {
		log.Fatal(err)
	}
	if err := bundle.Close(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pub := artifact.NewMemoryStore()
	if err := artifact.PutFiles(ctx, pub, fs.Default, map[string]string{
		"example/case.tar.zst": bundlePath,
	}, 2); err != nil {
		log.Fatal(err)
	}
	names, err := pub.List(ctx, "example/")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("published: %v\n", names)
}
