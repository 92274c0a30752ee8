package schema

import "sync"

// cacheKey identifies a document: same name under two locations must
// not alias.
type cacheKey struct {
	location string
	name     string
}

// documentCache memoizes fully expanded documents for the lifetime of
// the parser. Pure lookup and store; merge logic lives in the loader.
type documentCache struct {
	mu   sync.Mutex
	docs map[cacheKey]*Document
}

func newDocumentCache() *documentCache {
	return &documentCache{docs: map[cacheKey]*Document{}}
}

func (c *documentCache) get(location, name string) (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[cacheKey{location, name}]
	return doc, ok
}

func (c *documentCache) put(location, name string, doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[cacheKey{location, name}] = doc
}

func (c *documentCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}
