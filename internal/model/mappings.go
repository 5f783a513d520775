package model

import "sparsefields/internal/sparse"

// Mappings builds the column map for the model: its own fields at the top
// level plus one nested map per relation. Model is a sparse.MappingSource.
func (m *Model) Mappings() sparse.ColumnMap {
	out := make(sparse.ColumnMap, len(m.Fields)+len(m.Relations))
	for field, col := range m.Fields {
		out[field] = col
	}
	for name, rel := range m.Relations {
		fm := rel.FieldMap()
		if len(fm) == 0 {
			out[name] = nil
			continue
		}
		sub := make(sparse.ColumnMap, len(fm))
		for field, col := range fm {
			sub[field] = col
		}
		out[name] = sub
	}
	return out
}

// SparseFields builds the request's sparse fieldset against this model,
// falling back to the model defaults for whatever the request omits.
// A nil src means the model's own column map.
func (m *Model) SparseFields(req sparse.Accessor, src sparse.MappingSource) *sparse.SparseFields {
	if src == nil {
		src = m
	}
	return sparse.Make(withDefaults{req: req, defaults: m.Defaults}, src)
}

type withDefaults struct {
	req      sparse.Accessor
	defaults Defaults
}

func (a withDefaults) Lookup(key string) (any, bool) {
	if a.req != nil {
		if v, ok := a.req.Lookup(key); ok && !isEmpty(v) {
			return v, true
		}
	}
	switch key {
	case "fields":
		return []string(a.defaults.Fields), len(a.defaults.Fields) > 0
	case "relations":
		return a.defaults.Relations, len(a.defaults.Relations) > 0
	}
	return nil, false
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case sparse.RelationSpecs:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	}
	return false
}
