package schema

import (
	"go.uber.org/zap"

	"github.com/veridian/dirschema/errors"
)

// Resolver applies object-level inheritance. Given an object definition
// inside a document it resolves extends / extends_default, fetching the
// parent definition (possibly from another document or the default
// location) and merging it under the child.
//
// Resolution is deliberately one level deep: a parent's own extends
// directives are left untouched.
type Resolver struct {
	loader   *Loader
	defaults Storage
	log      *zap.SugaredLogger
}

// NewResolver returns a resolver loading cross-document parents through
// loader and extends_default parents from the default storage.
func NewResolver(loader *Loader, defaults Storage, log *zap.SugaredLogger) *Resolver {
	return &Resolver{loader: loader, defaults: defaults, log: log}
}

// ResolveObject locates objectType inside doc and resolves its
// object-level inheritance. st is the storage doc was loaded from, used
// for cross-document extends lookups.
func (r *Resolver) ResolveObject(doc *Document, st Storage, objectType string) (ObjectDefinition, error) {
	def, err := findObject(doc, objectType)
	if err != nil {
		return nil, err
	}

	extendsDefault, hasExtendsDefault := def.Get(keyExtendsDefault)
	extends, hasExtends := def.Get(keyExtends)
	if !hasExtends && !hasExtendsDefault {
		return def, nil
	}

	var parent ObjectDefinition
	switch {
	case hasExtendsDefault:
		parent, err = r.resolveDefaultParent(extendsDefault)
	default:
		parent, err = r.resolveParent(doc, st, extends)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "resolving parent of type %q in document %q", objectType, doc.Name)
	}

	merged := mergeDefinitions(def, parent)
	r.log.Debugw("object inheritance resolved",
		"document", doc.Name,
		"type", objectType,
		"keys", merged.Len())
	return merged, nil
}

// resolveDefaultParent handles an object-level extends_default, always
// a [defaultDocName, parentType] pair resolved in the default location.
func (r *Resolver) resolveDefaultParent(directive any) (ObjectDefinition, error) {
	docName, parentType, err := directivePair(directive, keyExtendsDefault)
	if err != nil {
		return nil, err
	}
	parentDoc, err := r.loader.Load(r.defaults, docName)
	if err != nil {
		return nil, err
	}
	return findObject(parentDoc, parentType)
}

// resolveParent handles an object-level extends: either a sibling type
// name within the same document, or a [docName, parentType] pair
// resolved in the document's own storage location.
func (r *Resolver) resolveParent(doc *Document, st Storage, directive any) (ObjectDefinition, error) {
	if parentType, ok := directive.(string); ok {
		return findObject(doc, parentType)
	}

	docName, parentType, err := directivePair(directive, keyExtends)
	if err != nil {
		return nil, err
	}
	parentDoc, err := r.loader.Load(st, docName)
	if err != nil {
		return nil, err
	}
	return findObject(parentDoc, parentType)
}

// directivePair validates a 2-element [documentName, objectType]
// directive value.
func directivePair(directive any, key string) (docName, objectType string, err error) {
	seq, ok := directive.([]any)
	if !ok || len(seq) != 2 {
		return "", "", errors.Wrapf(errors.ErrInvalidDirective, "%s must be a [document, type] pair", key)
	}
	docName, ok = seq[0].(string)
	if !ok {
		return "", "", errors.Wrapf(errors.ErrInvalidDirective, "%s document name must be a string", key)
	}
	objectType, ok = seq[1].(string)
	if !ok {
		return "", "", errors.Wrapf(errors.ErrInvalidDirective, "%s object type must be a string", key)
	}
	return docName, objectType, nil
}

// findObject scans a document's objects for the requested type. The
// format does not guarantee type uniqueness; when several definitions
// share a type the last one in sequence order wins.
func findObject(doc *Document, objectType string) (ObjectDefinition, error) {
	var found ObjectDefinition
	for _, def := range doc.Objects {
		if t, ok := def.String(keyType); ok && t == objectType {
			found = def
		}
	}
	if found == nil {
		return nil, errors.Wrapf(errors.ErrObjectTypeNotFound, "no definition for type %q in document %q", objectType, doc.Name)
	}
	return found, nil
}
