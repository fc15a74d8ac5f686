package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed levels/*.json
var campaignFS embed.FS

// Extensions lists the record file extensions probed for a key, in order.
var Extensions = []string{".json", ".yaml", ".yml"}

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("level: record not found")

// Source is a keyed store of raw level records.
type Source interface {
	// Lookup returns the raw record stored under key.
	Lookup(key string) ([]byte, error)
	// Exists reports whether a record is stored under key.
	Exists(key string) bool
}

// FSSource reads records named <key><ext> from a directory of an fs.FS.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source rooted at dir inside fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

// NewDirSource creates a source over a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), ".")
}

// Campaign returns the source of the built-in level set.
func Campaign() *FSSource {
	return NewFSSource(campaignFS, "levels")
}

// Lookup implements Source.
func (s *FSSource) Lookup(key string) ([]byte, error) {
	for _, ext := range Extensions {
		data, err := fs.ReadFile(s.fsys, path.Join(s.dir, key+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("level: read %s%s: %w", key, ext, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Exists implements Source.
func (s *FSSource) Exists(key string) bool {
	for _, ext := range Extensions {
		if _, err := fs.Stat(s.fsys, path.Join(s.dir, key+ext)); err == nil {
			return true
		}
	}
	return false
}

// Layered consults its sources in order; the first one holding a key wins.
type Layered []Source

// Lookup implements Source.
func (l Layered) Lookup(key string) ([]byte, error) {
	for _, src := range l {
		if src.Exists(key) {
			return src.Lookup(key)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Exists implements Source.
func (l Layered) Exists(key string) bool {
	for _, src := range l {
		if src.Exists(key) {
			return true
		}
	}
	return false
}
