package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetPut(t *testing.T) {
	c := newDocumentCache()

	_, ok := c.get("dir:/a", "user")
	assert.False(t, ok)

	doc := &Document{Location: "dir:/a", Name: "user"}
	c.put("dir:/a", "user", doc)

	got, ok := c.get("dir:/a", "user")
	require.True(t, ok)
	assert.Same(t, doc, got)
	assert.Equal(t, 1, c.len())
}

func TestCacheKeysDoNotAliasAcrossLocations(t *testing.T) {
	c := newDocumentCache()

	docA := &Document{Location: "dir:/a", Name: "user"}
	docB := &Document{Location: "dir:/b", Name: "user"}
	c.put("dir:/a", "user", docA)
	c.put("dir:/b", "user", docB)

	gotA, ok := c.get("dir:/a", "user")
	require.True(t, ok)
	gotB, ok := c.get("dir:/b", "user")
	require.True(t, ok)

	assert.Same(t, docA, gotA)
	assert.Same(t, docB, gotB)
	assert.Equal(t, 2, c.len())
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := newDocumentCache()
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.put("dir:/a", "user", &Document{Name: "user"})
				c.get("dir:/a", "user")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Equal(t, 1, c.len())
}
