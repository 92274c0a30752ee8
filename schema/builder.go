package schema

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/veridian/dirschema/errors"
)

// ResolvedObjectSchema is the fully merged, validated description of
// one directory-object type, identified by (SchemaName, ObjectType).
// Instances are built fresh per call and immutable once returned.
type ResolvedObjectSchema struct {
	SchemaName string `json:"schema_name"`
	ObjectType string `json:"object_type"`

	ObjectClass           string         `json:"object_class,omitempty"`
	ObjectCategory        string         `json:"object_category,omitempty"`
	AttributesToSelect    []string       `json:"attributes_to_select,omitempty"`
	Repository            string         `json:"repository,omitempty"`
	DefaultValues         map[string]any `json:"default_values,omitempty"`
	RequiredAttributes    []string       `json:"required_attributes,omitempty"`
	DefaultContainer      string         `json:"default_container,omitempty"`
	ConverterOptions      map[string]any `json:"converter_options,omitempty"`
	MultivaluedAttributes []string       `json:"multivalued_attributes,omitempty"`
	BaseDN                string         `json:"base_dn,omitempty"`

	// Attributes maps directory attribute names to friendly names.
	// Never empty on a built schema.
	Attributes map[string]string `json:"attributes"`
	// Converters maps directory attribute names to converter names.
	Converters map[string]string `json:"converters,omitempty"`
}

// passthroughFields is the fixed option-to-field table. The option set
// is known at design time, so assignment is a static loop rather than
// any by-name dispatch.
var passthroughFields = []struct {
	key   string
	apply func(*ResolvedObjectSchema, any)
}{
	{keyClass, func(s *ResolvedObjectSchema, v any) { s.ObjectClass = scalarString(v) }},
	{keyCategory, func(s *ResolvedObjectSchema, v any) { s.ObjectCategory = scalarString(v) }},
	{"attributes_to_select", func(s *ResolvedObjectSchema, v any) { s.AttributesToSelect = stringList(v) }},
	{"repository", func(s *ResolvedObjectSchema, v any) { s.Repository = scalarString(v) }},
	{"default_values", func(s *ResolvedObjectSchema, v any) { s.DefaultValues = plainMap(v) }},
	{"required_attributes", func(s *ResolvedObjectSchema, v any) { s.RequiredAttributes = stringList(v) }},
	{"default_container", func(s *ResolvedObjectSchema, v any) { s.DefaultContainer = scalarString(v) }},
	{"converter_options", func(s *ResolvedObjectSchema, v any) { s.ConverterOptions = plainMap(v) }},
	{"multivalued_attributes", func(s *ResolvedObjectSchema, v any) { s.MultivaluedAttributes = stringList(v) }},
	{"base_dn", func(s *ResolvedObjectSchema, v any) { s.BaseDN = scalarString(v) }},
}

// Builder validates merged object definitions and assembles the final
// resolved schema.
type Builder struct {
	resolver *Resolver
	log      *zap.SugaredLogger
}

// NewBuilder returns a builder resolving inheritance through resolver.
func NewBuilder(resolver *Resolver, log *zap.SugaredLogger) *Builder {
	return &Builder{resolver: resolver, log: log}
}

// Build locates objectType in doc, resolves its inheritance, validates
// the merged definition, and populates the resolved schema.
func (b *Builder) Build(doc *Document, st Storage, schemaName, objectType string) (*ResolvedObjectSchema, error) {
	if !doc.HasObjects {
		return nil, errors.Wrapf(errors.ErrNoObjectsSection, "document %q", doc.Name)
	}

	def, err := b.resolver.ResolveObject(doc, st, objectType)
	if err != nil {
		return nil, err
	}

	if !def.Has(keyClass) && !def.Has(keyCategory) {
		return nil, errors.Wrapf(errors.ErrMissingClassOrCategory, "type %q in document %q", objectType, doc.Name)
	}

	rawAttrs, ok := def.Get(keyAttributes)
	if !ok {
		return nil, errors.Wrapf(errors.ErrMissingAttributes, "type %q in document %q", objectType, doc.Name)
	}
	attrs, err := attributeMap(rawAttrs, objectType, doc.Name)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedObjectSchema{
		SchemaName: schemaName,
		ObjectType: objectType,
	}
	for _, field := range passthroughFields {
		if v, ok := def.Get(field.key); ok {
			field.apply(resolved, v)
		}
	}
	resolved.Attributes = attrs

	if rawConverters, ok := def.Get(keyConverters); ok {
		resolved.Converters = converterMap(rawConverters)
	}

	b.log.Debugw("schema built",
		"schema", schemaName,
		"type", objectType,
		"attributes", len(resolved.Attributes),
		"converters", len(resolved.Converters))
	return resolved, nil
}

// attributeMap validates and converts the attributes mapping. A
// sequence instead of a mapping, or mapping keys that are purely
// numeric, mean the author wrote a positional list where an associative
// map is required.
func attributeMap(raw any, objectType, docName string) (map[string]string, error) {
	m, ok := raw.(*Mapping)
	if !ok {
		if _, isSeq := raw.([]any); isSeq {
			return nil, errors.Wrapf(errors.ErrAttributesNotAssociative, "type %q in document %q: attributes is a sequence", objectType, docName)
		}
		return nil, errors.Wrapf(errors.ErrMissingAttributes, "type %q in document %q: attributes is not a mapping", objectType, docName)
	}
	if m.Len() == 0 {
		return nil, errors.Wrapf(errors.ErrMissingAttributes, "type %q in document %q: attributes is empty", objectType, docName)
	}

	out := make(map[string]string, m.Len())
	for _, key := range m.Keys() {
		if numericKey(key) {
			return nil, errors.Wrapf(errors.ErrAttributesNotAssociative, "type %q in document %q: attribute key %q is positional", objectType, docName, key)
		}
		v, _ := m.Get(key)
		out[key] = scalarString(v)
	}
	return out, nil
}

// converterMap inverts the converters mapping from converter name ->
// attribute(s) into attribute -> converter name. Entries are applied in
// declaration order, so a later converter claims an attribute already
// assigned to an earlier one.
func converterMap(raw any) map[string]string {
	m, ok := raw.(*Mapping)
	if !ok {
		return nil
	}
	out := make(map[string]string, m.Len())
	for _, converter := range m.Keys() {
		v, _ := m.Get(converter)
		switch t := v.(type) {
		case []any:
			for _, attr := range t {
				out[scalarString(attr)] = converter
			}
		default:
			out[scalarString(t)] = converter
		}
	}
	return out
}

func scalarString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, scalarString(e))
		}
		return out
	case string:
		return []string{t}
	default:
		return nil
	}
}

func plainMap(v any) map[string]any {
	if m, ok := v.(*Mapping); ok {
		return m.ToPlain()
	}
	return nil
}
