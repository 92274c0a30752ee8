package schema

import (
	"embed"
	"os"
	"path/filepath"
	"time"

	"github.com/veridian/dirschema/errors"
)

// DefaultExtension is the file extension schema documents carry by
// convention.
const DefaultExtension = ".yml"

// Storage is a root under which documents are looked up by name. Two
// kinds exist: caller-supplied directories and the fixed built-in
// location that extends_default directives resolve against.
type Storage interface {
	// ID identifies the location for cache keying. Two storages with
	// the same ID are the same location; documents with equal names in
	// different locations must not alias.
	ID() string
	// Read returns the raw content of the named document along with the
	// resolved path, used for error context.
	Read(name string) (content []byte, path string, err error)
	// ModTime returns the last modification time of the named document.
	ModTime(name string) (time.Time, error)
}

// DirStorage serves documents from a filesystem directory, looked up as
// <dir>/<name><ext>.
type DirStorage struct {
	dir string
	ext string
}

// NewDirStorage returns a directory-backed storage. An empty ext falls
// back to DefaultExtension.
func NewDirStorage(dir, ext string) *DirStorage {
	if ext == "" {
		ext = DefaultExtension
	}
	return &DirStorage{dir: dir, ext: ext}
}

func (s *DirStorage) ID() string {
	return "dir:" + s.dir
}

func (s *DirStorage) path(name string) string {
	return filepath.Join(s.dir, name+s.ext)
}

func (s *DirStorage) Read(name string) ([]byte, string, error) {
	path := s.path(name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return content, path, nil
}

func (s *DirStorage) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(s.path(name))
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.Wrap(errors.ErrResourceUnreadable, err.Error()), "stat %s", s.path(name))
	}
	return info.ModTime(), nil
}

//go:embed defaults/*.yml
var defaultsFS embed.FS

// builtinStorage serves the embedded default document set.
type builtinStorage struct{}

// DefaultStorage returns the fixed built-in storage location holding the
// shipped default documents. It is the location extends_default resolves
// against, and the parse target when no directory is configured.
func DefaultStorage() Storage {
	return builtinStorage{}
}

func (builtinStorage) ID() string {
	return "builtin"
}

func (builtinStorage) Read(name string) ([]byte, string, error) {
	path := "defaults/" + name + DefaultExtension
	content, err := defaultsFS.ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return content, path, nil
}

func (builtinStorage) ModTime(name string) (time.Time, error) {
	// Embedded resources carry no timestamp.
	return time.Time{}, errors.Wrapf(errors.ErrResourceUnreadable, "built-in document %q has no modification time", name)
}
