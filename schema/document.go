// Package schema resolves declarative object-schema documents for a
// directory-service client. A named document is located in a storage
// location, expanded through its inheritance directives (include,
// extends, extends_default), validated, and turned into a
// ResolvedObjectSchema ready for query and CRUD logic.
package schema

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/veridian/dirschema/errors"
)

// Top-level document keys.
const (
	keyObjects        = "objects"
	keyInclude        = "include"
	keyExtendsDefault = "extends_default"
)

// Object definition keys with dedicated handling.
const (
	keyType       = "type"
	keyClass      = "class"
	keyCategory   = "category"
	keyAttributes = "attributes"
	keyConverters = "converters"
	keyExtends    = "extends"
)

// Mapping is a YAML mapping that preserves key declaration order. Keys
// are the scalar text of the YAML key nodes, so a numeric key arrives as
// its digit string ("0") and can be rejected during validation instead
// of failing the decode. Nested mappings decode to *Mapping, sequences
// to []any, scalars to their natural Go type.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{values: map[string]any{}}
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key, appending the key if it is new.
func (m *Mapping) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in declaration order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// String returns the value under key if it is a string.
func (m *Mapping) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a deep copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	if m == nil {
		return nil
	}
	out := NewMapping()
	for _, k := range m.keys {
		out.Set(k, cloneValue(m.values[k]))
	}
	return out
}

// ToPlain converts the mapping to an ordinary map, recursively. Key
// order is lost; used for JSON output and passthrough fields.
func (m *Mapping) ToPlain() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plainValue(m.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Mapping:
		return t.ToPlain()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Mapping:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// numericKey reports whether a mapping key is purely positional, i.e.
// parses as an integer. YAML integer keys arrive as their digit strings.
func numericKey(key string) bool {
	_, err := strconv.Atoi(key)
	return err == nil
}

// ObjectDefinition is the raw, possibly-unmerged description of one
// directory-object type within a document.
type ObjectDefinition = *Mapping

// Document is a named collection of object definitions plus inheritance
// directives. Identity is (Location, Name); once a document has been
// fully expanded and cached it is never mutated again.
type Document struct {
	// Location is the identity of the storage the document was loaded from.
	Location string
	// Name is the document name within its storage location.
	Name string
	// Objects is the expanded object definition sequence. Includes are
	// appended after the document's own entries, in declaration order.
	Objects []ObjectDefinition
	// HasObjects distinguishes an absent objects key from an empty list.
	HasObjects bool

	// Unresolved directives, consumed by the loader during expansion.
	include        []string
	extendsDefault string
}

// decodeDocument deserializes raw document content. Inheritance
// directives are captured but not resolved; that is the loader's job.
func decodeDocument(location, name string, content []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, errors.Wrapf(errors.Wrap(errors.ErrDocumentMalformed, err.Error()), "deserializing document %q", name)
	}

	doc := &Document{Location: location, Name: name}
	if root.Kind == 0 || len(root.Content) == 0 {
		// Empty file: a document with no keys at all.
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(errors.ErrDocumentMalformed, "document %q is not a mapping", name)
	}

	mapping, err := decodeMapping(top)
	if err != nil {
		return nil, errors.Wrapf(errors.Wrap(errors.ErrDocumentMalformed, err.Error()), "deserializing document %q", name)
	}

	if raw, ok := mapping.Get(keyObjects); ok {
		doc.HasObjects = true
		seq, ok := raw.([]any)
		if !ok {
			return nil, errors.Wrapf(errors.ErrDocumentMalformed, "document %q: objects is not a sequence", name)
		}
		for i, entry := range seq {
			def, ok := entry.(*Mapping)
			if !ok {
				return nil, errors.Wrapf(errors.ErrDocumentMalformed, "document %q: objects[%d] is not a mapping", name, i)
			}
			doc.Objects = append(doc.Objects, def)
		}
	}

	if raw, ok := mapping.Get(keyInclude); ok {
		switch t := raw.(type) {
		case string:
			doc.include = []string{t}
		case []any:
			for i, entry := range t {
				s, ok := entry.(string)
				if !ok {
					return nil, errors.Wrapf(errors.ErrDocumentMalformed, "document %q: include[%d] is not a name", name, i)
				}
				doc.include = append(doc.include, s)
			}
		default:
			return nil, errors.Wrapf(errors.ErrDocumentMalformed, "document %q: include must be a name or list of names", name)
		}
	}

	if raw, ok := mapping.Get(keyExtendsDefault); ok {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.Wrapf(errors.ErrDocumentMalformed, "document %q: extends_default must be a document name", name)
		}
		doc.extendsDefault = s
	}

	return doc, nil
}

// decodeMapping walks a YAML mapping node into a Mapping, preserving
// key order. Duplicate keys follow YAML semantics: the last wins.
func decodeMapping(n *yaml.Node) (*Mapping, error) {
	m := NewMapping()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		valueNode := n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.Newf("mapping key at line %d is not a scalar", keyNode.Line)
		}
		v, err := decodeNode(valueNode)
		if err != nil {
			return nil, err
		}
		m.Set(keyNode.Value, v)
	}
	return m, nil
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
