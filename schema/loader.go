package schema

import (
	"sync"

	"go.uber.org/zap"

	"github.com/veridian/dirschema/errors"
)

// Loader reads named documents from a storage location, expands their
// document-level inheritance (include, extends_default), and memoizes
// the result. Loading the same (location, name) twice never re-reads or
// re-merges.
type Loader struct {
	cache    *documentCache
	defaults Storage
	log      *zap.SugaredLogger

	// mu serializes load-or-populate so that concurrent first access to
	// the same key cannot observe a partially merged document.
	mu sync.Mutex
}

// NewLoader returns a loader resolving extends_default against the
// given default storage.
func NewLoader(defaults Storage, log *zap.SugaredLogger) *Loader {
	return &Loader{
		cache:    newDocumentCache(),
		defaults: defaults,
		log:      log,
	}
}

// Load returns the fully expanded document stored under name in st.
func (l *Loader) Load(st Storage, name string) (*Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(st, name, map[cacheKey]bool{})
}

// load is the recursive worker behind Load. resolving tracks the
// documents on the current expansion chain; revisiting one means the
// include/extends_default graph is cyclic and would otherwise recurse
// forever.
func (l *Loader) load(st Storage, name string, resolving map[cacheKey]bool) (*Document, error) {
	key := cacheKey{location: st.ID(), name: name}

	if doc, ok := l.cache.get(key.location, key.name); ok {
		l.log.Debugw("document cache hit", "location", key.location, "name", name)
		return doc, nil
	}

	if resolving[key] {
		return nil, errors.Wrapf(errors.ErrCyclicReference, "document %q in %s includes itself", name, key.location)
	}
	resolving[key] = true
	defer delete(resolving, key)

	content, path, err := st.Read(name)
	if err != nil {
		return nil, errors.Wrapf(errors.Wrap(errors.ErrResourceUnreadable, err.Error()), "reading document %s", path)
	}

	doc, err := decodeDocument(key.location, name, content)
	if err != nil {
		return nil, err
	}

	// A document may inherit an entire default document's object list
	// while staying cached under its own (location, name) key. The
	// default location is fixed and unrelated to st.
	if doc.extendsDefault != "" {
		parent, err := l.load(l.defaults, doc.extendsDefault, resolving)
		if err != nil {
			return nil, errors.Wrapf(err, "document %q extends default %q", name, doc.extendsDefault)
		}
		doc.Objects = append(cloneObjects(parent.Objects), doc.Objects...)
		doc.HasObjects = doc.HasObjects || parent.HasObjects
	}

	// Includes are purely additive: own objects first, then each
	// included document's objects in declaration order, no dedup.
	for _, included := range doc.include {
		inc, err := l.load(st, included, resolving)
		if err != nil {
			return nil, errors.Wrapf(err, "document %q includes %q", name, included)
		}
		doc.Objects = append(doc.Objects, cloneObjects(inc.Objects)...)
		doc.HasObjects = doc.HasObjects || inc.HasObjects
	}

	l.cache.put(key.location, key.name, doc)
	l.log.Debugw("document loaded",
		"location", key.location,
		"name", name,
		"objects", len(doc.Objects))
	return doc, nil
}

func cloneObjects(defs []ObjectDefinition) []ObjectDefinition {
	out := make([]ObjectDefinition, len(defs))
	for i, d := range defs {
		out[i] = d.Clone()
	}
	return out
}
