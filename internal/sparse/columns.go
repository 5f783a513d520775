package sparse

import "strings"

// ColumnsFor resolves fields to columns.
// An empty relation means the primary resource; nil fields means
// "the fieldset registered for relation, or the primary fieldset".
func (s *SparseFields) ColumnsFor(relation string, fields []string) []string {
	if fields == nil {
		if fs, ok := s.relations.fields[relation]; ok && relation != "" {
			fields = fs
		} else {
			fields = s.fields
		}
	} else {
		fields = normalizeFields(fields)
	}

	var sub any = s.mappings
	if relation != "" {
		sub = lookup(s.mappings, relation)
	}

	table, passThrough := asTable(sub)
	if passThrough {
		return append([]string(nil), fields...)
	}

	seen := make(map[string]struct{}, len(fields))
	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := table[f].(string)
		if !ok || col == "" {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return []string{Wildcard}
	}
	return columns
}

// Columns resolves the primary fieldset.
func (s *SparseFields) Columns() []string {
	return s.ColumnsFor("", nil)
}

// RelationColumns resolves the fieldset registered for relation.
func (s *SparseFields) RelationColumns(relation string) []string {
	return s.ColumnsFor(relation, nil)
}

// lookup finds key directly, then as a dot path through nested maps.
func lookup(m ColumnMap, key string) any {
	if m == nil {
		return nil
	}
	if v, ok := m[key]; ok {
		return v
	}
	if !strings.Contains(key, ".") {
		return nil
	}
	var cur any = m
	for _, part := range strings.Split(key, ".") {
		table, isMap := toMap(cur)
		if !isMap {
			return nil
		}
		v, ok := table[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// asTable returns v as a lookup table, or passThrough=true when v means
// "no translation": nil, "*", ["*"], or a map without a single flat
// field -> column entry (e.g. one holding only per-relation maps).
func asTable(v any) (table map[string]any, passThrough bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case ColumnMap:
		return t, !hasFlatEntry(t)
	case map[string]any:
		return t, !hasFlatEntry(t)
	case map[string]string:
		if len(t) == 0 {
			return nil, true
		}
		table = make(map[string]any, len(t))
		for k, col := range t {
			table[k] = col
		}
		return table, false
	case string:
		if t == "" || t == Wildcard {
			return nil, true
		}
	case []string:
		if len(t) == 0 || (len(t) == 1 && t[0] == Wildcard) {
			return nil, true
		}
	case []any:
		if len(t) == 0 || (len(t) == 1 && t[0] == Wildcard) {
			return nil, true
		}
	}
	// скаляр или список: ни одно поле не найдётся
	return map[string]any{}, false
}

func hasFlatEntry(m map[string]any) bool {
	for _, v := range m {
		if _, ok := v.(string); ok {
			return true
		}
	}
	return false
}

func toMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case ColumnMap:
		return t, true
	case map[string]any:
		return t, true
	}
	return nil, false
}
