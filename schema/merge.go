package schema

// mergeDefinitions merges a parent object definition under a child.
// Precedence follows the child: where both sides define the same scalar
// key the child's value survives. Collection-valued keys accumulate
// instead of replacing: sequences concatenate parent entries before
// child entries without deduplication, and nested mappings merge
// recursively under the same rules. Keys only the parent defines are
// carried over. The inputs are left untouched.
func mergeDefinitions(child, parent *Mapping) *Mapping {
	if parent == nil {
		return child.Clone()
	}
	if child == nil {
		return parent.Clone()
	}

	out := NewMapping()
	for _, k := range parent.keys {
		pv := parent.values[k]
		if cv, ok := child.Get(k); ok {
			out.Set(k, mergeValues(cv, pv))
			continue
		}
		out.Set(k, cloneValue(pv))
	}
	for _, k := range child.keys {
		if out.Has(k) {
			continue
		}
		out.Set(k, cloneValue(child.values[k]))
	}
	return out
}

func mergeValues(child, parent any) any {
	if cm, ok := child.(*Mapping); ok {
		if pm, ok := parent.(*Mapping); ok {
			return mergeDefinitions(cm, pm)
		}
	}
	if cs, ok := child.([]any); ok {
		if ps, ok := parent.([]any); ok {
			out := make([]any, 0, len(ps)+len(cs))
			for _, v := range ps {
				out = append(out, cloneValue(v))
			}
			for _, v := range cs {
				out = append(out, cloneValue(v))
			}
			return out
		}
	}
	return cloneValue(child)
}
