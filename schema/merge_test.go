package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mappingOf(pairs ...any) *Mapping {
	m := NewMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

func TestMergeChildScalarWins(t *testing.T) {
	child := mappingOf("class", "computer", "category", "computer")
	parent := mappingOf("class", "user", "repository", "ad")

	merged := mergeDefinitions(child, parent)

	class, _ := merged.String("class")
	assert.Equal(t, "computer", class)
	repo, _ := merged.String("repository")
	assert.Equal(t, "ad", repo, "parent-only keys carry over")
	category, _ := merged.String("category")
	assert.Equal(t, "computer", category)
}

func TestMergeSequencesConcatenate(t *testing.T) {
	child := mappingOf("required_attributes", []any{"dNSHostName", "cn"})
	parent := mappingOf("required_attributes", []any{"cn", "sAMAccountName"})

	merged := mergeDefinitions(child, parent)

	v, ok := merged.Get("required_attributes")
	require.True(t, ok)
	// Parent entries first, child entries after, duplicates kept.
	assert.Equal(t, []any{"cn", "sAMAccountName", "dNSHostName", "cn"}, v)
}

func TestMergeNestedMappingsRecurse(t *testing.T) {
	child := mappingOf("attributes", mappingOf("mail", "email", "cn", "override"))
	parent := mappingOf("attributes", mappingOf("cn", "common_name", "sn", "last_name"))

	merged := mergeDefinitions(child, parent)

	attrs, ok := merged.Get("attributes")
	require.True(t, ok)
	m, ok := attrs.(*Mapping)
	require.True(t, ok)

	cn, _ := m.String("cn")
	assert.Equal(t, "override", cn, "child wins on key collision")
	sn, _ := m.String("sn")
	assert.Equal(t, "last_name", sn)
	mail, _ := m.String("mail")
	assert.Equal(t, "email", mail)
	// Parent key order first, then child-only keys.
	assert.Equal(t, []string{"cn", "sn", "mail"}, m.Keys())
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	child := mappingOf("attributes", mappingOf("mail", "email"))
	parent := mappingOf("attributes", mappingOf("cn", "common_name"))

	merged := mergeDefinitions(child, parent)

	attrs, _ := merged.Get("attributes")
	attrs.(*Mapping).Set("injected", "value")

	childAttrs, _ := child.Get("attributes")
	parentAttrs, _ := parent.Get("attributes")
	assert.False(t, childAttrs.(*Mapping).Has("injected"))
	assert.False(t, parentAttrs.(*Mapping).Has("injected"))
	assert.Equal(t, 1, childAttrs.(*Mapping).Len())
	assert.Equal(t, 1, parentAttrs.(*Mapping).Len())
}

func TestMergeNilSides(t *testing.T) {
	m := mappingOf("class", "user")

	merged := mergeDefinitions(m, nil)
	class, _ := merged.String("class")
	assert.Equal(t, "user", class)

	merged = mergeDefinitions(nil, m)
	class, _ = merged.String("class")
	assert.Equal(t, "user", class)
}

func TestMergeMismatchedKindsChildWins(t *testing.T) {
	// Child scalar vs parent sequence: more specific value replaces.
	child := mappingOf("attributes_to_select", "cn")
	parent := mappingOf("attributes_to_select", []any{"cn", "sn"})

	merged := mergeDefinitions(child, parent)
	v, _ := merged.Get("attributes_to_select")
	assert.Equal(t, "cn", v)
}
