// Package manifest tracks the artifacts written for a case.
//
// A manifest lists every output file with its format, size and
// checksum. Updates are atomic: a new manifest file is written and a
// CURRENT pointer is flipped to it, so readers always see a complete
// manifest even across crashes.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hupe1980/fortgo/codec"
	"github.com/hupe1980/fortgo/internal/fs"
	"github.com/hupe1980/fortgo/internal/hash"
)

const (
	ManifestFileName = "MANIFEST"
	CurrentFileName  = "CURRENT"
	CurrentVersion   = 1
)

// Manifest describes the artifacts of a case at a specific point in time.
type Manifest struct {
	Version   int            `json:"version"`
	ID        uint64         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Case      string         `json:"case"`
	ByteOrder string         `json:"byte_order"`
	Codec     string         `json:"codec"`
	Artifacts []ArtifactInfo `json:"artifacts"`
}

// ArtifactInfo describes a single written artifact.
type ArtifactInfo struct {
	Path    string `json:"path"` // Relative to data dir
	Format  string `json:"format"`
	Bytes   int64  `json:"bytes"`
	Records int    `json:"records"`
	CRC32C  uint32 `json:"crc32c"`
}

// Add appends an artifact, replacing any previous entry for the same
// path.
func (m *Manifest) Add(info ArtifactInfo) {
	for i := range m.Artifacts {
		if m.Artifacts[i].Path == info.Path {
			m.Artifacts[i] = info
			return
		}
	}
	m.Artifacts = append(m.Artifacts, info)
}

// Find returns the artifact entry for path.
func (m *Manifest) Find(path string) (ArtifactInfo, bool) {
	for _, a := range m.Artifacts {
		if a.Path == path {
			return a, true
		}
	}
	return ArtifactInfo{}, false
}

// Options configures a manifest store.
type Options struct {
	// Codec encodes and decodes manifest files. Both built-in codecs
	// produce JSON, so files stay interchangeable between them.
	Codec codec.Codec
}

// DefaultOptions uses the library default codec.
var DefaultOptions = Options{
	Codec: codec.Default,
}

// Store manages the manifest file and atomic updates.
type Store struct {
	fs    fs.FileSystem
	dir   string
	codec codec.Codec
	mu    sync.Mutex
}

// NewStore creates a new manifest store.
func NewStore(fsys fs.FileSystem, dir string, optFns ...func(o *Options)) *Store {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	return &Store{
		fs:    fsys,
		dir:   dir,
		codec: opts.Codec,
	}
}

// Load loads the current manifest.
func (s *Store) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readFile := func(path string) ([]byte, error) {
		f, err := s.fs.OpenFile(path, os.O_RDONLY, 0)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	// Read CURRENT file to get the manifest filename
	currentPath := filepath.Join(s.dir, CurrentFileName)
	content, err := readFile(currentPath)
	if os.IsNotExist(err) {
		// No manifest yet, return empty with current version
		return &Manifest{ID: 0, Version: CurrentVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(s.dir, string(content))
	data, err := readFile(manifestPath)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := s.codec.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, CurrentVersion)
	}

	return &m, nil
}

// Save atomically saves a new manifest.
func (s *Store) Save(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion
	m.ID++
	m.Codec = s.codec.Name()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	// 1. Write new manifest file
	filename := fmt.Sprintf("%s-%06d.json", ManifestFileName, m.ID)
	path := filepath.Join(s.dir, filename)

	data, err := s.marshal(m)
	if err != nil {
		return err
	}

	if err := s.writeFileSync(path, data); err != nil {
		return err
	}
	if err := fs.SyncDir(s.fs, s.dir); err != nil {
		return err
	}

	// 2. Update CURRENT pointer atomically
	currentPath := filepath.Join(s.dir, CurrentFileName)
	if err := s.writeFileSync(currentPath, []byte(filename)); err != nil {
		return err
	}

	return fs.SyncDir(s.fs, s.dir)
}

// marshal encodes through the configured codec, then indents so the
// on-disk manifest stays reviewable with plain tools.
func (s *Store) marshal(m *Manifest) ([]byte, error) {
	data, err := s.codec.Marshal(m)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeFileSync writes data to a temp file, syncs it and renames it
// into place.
func (s *Store) writeFileSync(path string, data []byte) error {
	tmpPath := path + ".tmp"

	f, err := s.fs.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		s.fs.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		s.fs.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(tmpPath)
		return err
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		s.fs.Remove(tmpPath)
		return err
	}
	return nil
}

// AddFile stats and checksums the file at path relative to the store
// directory and records it in m.
func (s *Store) AddFile(m *Manifest, path, format string, records int) error {
	f, err := s.fs.OpenFile(filepath.Join(s.dir, path), os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}

	sum, err := hash.ChecksumReader(f)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", path, err)
	}

	m.Add(ArtifactInfo{
		Path:    path,
		Format:  format,
		Bytes:   info.Size(),
		Records: records,
		CRC32C:  sum,
	})
	return nil
}

// Verify recomputes the checksum and size of every artifact in m
// against the files under the store directory.
func (s *Store) Verify(m *Manifest) error {
	for _, a := range m.Artifacts {
		if err := s.verifyArtifact(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) verifyArtifact(a ArtifactInfo) error {
	f, err := s.fs.OpenFile(filepath.Join(s.dir, a.Path), os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", a.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("artifact %s: %w", a.Path, err)
	}
	if info.Size() != a.Bytes {
		return fmt.Errorf("artifact %s: size %d, manifest says %d", a.Path, info.Size(), a.Bytes)
	}

	sum, err := hash.ChecksumReader(f)
	if err != nil {
		return fmt.Errorf("artifact %s: %w", a.Path, err)
	}
	if sum != a.CRC32C {
		return fmt.Errorf("artifact %s: checksum %08x, manifest says %08x", a.Path, sum, a.CRC32C)
	}
	return nil
}
