package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian/dirschema/errors"
)

func TestDecodeDocumentPreservesKeyOrder(t *testing.T) {
	doc, err := decodeDocument("dir:/x", "user", []byte(`
objects:
  - type: user
    class: user
    converters:
      upper: [cn, name]
      lower: sn
    attributes:
      cn: common_name
      sn: last_name
`))
	require.NoError(t, err)
	require.Len(t, doc.Objects, 1)

	conv, ok := doc.Objects[0].Get("converters")
	require.True(t, ok)
	assert.Equal(t, []string{"upper", "lower"}, conv.(*Mapping).Keys())
}

func TestDecodeDocumentNumericKeysSurviveAsStrings(t *testing.T) {
	// Positional keys must reach validation, not fail the decode.
	doc, err := decodeDocument("dir:/x", "user", []byte(`
objects:
  - type: user
    class: user
    attributes:
      0: cn
      1: sn
`))
	require.NoError(t, err)

	attrs, ok := doc.Objects[0].Get("attributes")
	require.True(t, ok)
	m := attrs.(*Mapping)
	assert.Equal(t, []string{"0", "1"}, m.Keys())
	assert.True(t, numericKey("0"))
	assert.False(t, numericKey("cn"))
}

func TestDecodeDocumentWithoutObjects(t *testing.T) {
	doc, err := decodeDocument("dir:/x", "empty", []byte("include: other\n"))
	require.NoError(t, err)
	assert.False(t, doc.HasObjects)
	assert.Equal(t, []string{"other"}, doc.include)
}

func TestDecodeDocumentEmptyObjectsList(t *testing.T) {
	doc, err := decodeDocument("dir:/x", "empty", []byte("objects: []\n"))
	require.NoError(t, err)
	assert.True(t, doc.HasObjects)
	assert.Empty(t, doc.Objects)
}

func TestDecodeDocumentMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "objects: [unclosed\n"},
		{"top level sequence", "- type: user\n"},
		{"objects not a sequence", "objects: user\n"},
		{"object entry not a mapping", "objects:\n  - just-a-string\n"},
		{"include wrong type", "include: {a: b}\n"},
		{"include entry wrong type", "include:\n  - [nested]\n"},
		{"extends_default wrong type", "extends_default: [a, b]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDocument("dir:/x", "doc", []byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrDocumentMalformed), "got: %v", err)
		})
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	doc, err := decodeDocument("dir:/x", "blank", []byte(""))
	require.NoError(t, err)
	assert.False(t, doc.HasObjects)
	assert.Empty(t, doc.Objects)
}

func TestMappingToPlain(t *testing.T) {
	m := mappingOf(
		"name", "user",
		"nested", mappingOf("a", 1),
		"list", []any{mappingOf("b", 2), "c"},
	)

	plain := m.ToPlain()
	assert.Equal(t, map[string]any{
		"name":   "user",
		"nested": map[string]any{"a": 1},
		"list":   []any{map[string]any{"b": 2}, "c"},
	}, plain)
}

func TestMappingSetAndKeys(t *testing.T) {
	m := NewMapping()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3) // overwrite keeps original position

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, _ := m.Get("b")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
}
