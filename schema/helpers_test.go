package schema

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veridian/dirschema/errors"
)

// memStorage is an in-memory Storage that counts reads, so tests can
// assert a document is loaded at most once per (location, name) key.
type memStorage struct {
	id   string
	docs map[string]string

	mu    sync.Mutex
	reads map[string]int
}

func newMemStorage(id string, docs map[string]string) *memStorage {
	return &memStorage{id: id, docs: docs, reads: map[string]int{}}
}

func (s *memStorage) ID() string { return s.id }

func (s *memStorage) Read(name string) ([]byte, string, error) {
	s.mu.Lock()
	s.reads[name]++
	s.mu.Unlock()

	content, ok := s.docs[name]
	if !ok {
		return nil, s.id + "/" + name, os.ErrNotExist
	}
	return []byte(content), s.id + "/" + name, nil
}

func (s *memStorage) ModTime(name string) (time.Time, error) {
	if _, ok := s.docs[name]; !ok {
		return time.Time{}, errors.Wrapf(errors.ErrResourceUnreadable, "no document %q", name)
	}
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), nil
}

func (s *memStorage) readCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// newTestEngine wires a loader/resolver/builder triple over nop logging.
func newTestEngine(defaults Storage) (*Loader, *Resolver, *Builder) {
	log := testLogger()
	loader := NewLoader(defaults, log)
	resolver := NewResolver(loader, defaults, log)
	builder := NewBuilder(resolver, log)
	return loader, resolver, builder
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
