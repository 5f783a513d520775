package sparse

import (
	"strings"
)

// relationFields keeps relations in first-seen order.
type relationFields struct {
	names  []string
	fields map[string]FieldSet
}

func (r *relationFields) set(name string, fs FieldSet) {
	if r.fields == nil {
		r.fields = make(map[string]FieldSet)
	}
	if _, exists := r.fields[name]; !exists {
		r.names = append(r.names, name)
	}
	r.fields[name] = fs
}

// parseRelations normalizes raw relation declarations:
//
//	"related1"              -> related1: [*]
//	"related2:foo,bar"      -> related2: [foo bar]
//	"related3": "*" | nil   -> related3: [*]
//	"related4": "foo,bar"   -> related4: [foo bar]
//	"related5": [foo, bar]  -> related5: [foo bar]
//
// A positional "a,b" without a colon stays one relation named "a,b".
func parseRelations(entries []RelationEntry) relationFields {
	var out relationFields
	for _, e := range entries {
		name, raw := resolveEntry(e)
		out.set(name, normalizeFields(raw))
	}
	return out
}

// resolveEntry returns the relation name and its raw field list.
func resolveEntry(e RelationEntry) (string, []string) {
	name := strings.TrimSpace(e.Key)

	if isEmptyValue(e.Value) {
		return name, nil
	}

	switch v := e.Value.(type) {
	case string:
		if !e.Keyed {
			rel, fields, found := strings.Cut(v, ":")
			if !found {
				// запятая без двоеточия ничего не значит
				return strings.TrimSpace(v), nil
			}
			return strings.TrimSpace(rel), splitFields(fields)
		}
		return name, splitFields(v)
	case []string:
		return name, v
	case []any:
		fields := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				fields = append(fields, s)
			}
		}
		return name, fields
	case FieldSet:
		return name, v
	}
	return name, nil
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == Wildcard
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case FieldSet:
		return len(t) == 0
	}
	return false
}

func splitFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == Wildcard {
		return nil
	}
	return strings.Split(s, ",")
}

// normalizeFields trims, drops empty entries and duplicates; empty input gives [*].
func normalizeFields(raw []string) FieldSet {
	seen := make(map[string]struct{}, len(raw))
	out := make(FieldSet, 0, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	if len(out) == 0 {
		return FieldSet{Wildcard}
	}
	return out
}
