package sparse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RelationSpecs is an ordered list of raw relation declarations decoded from
// JSON or YAML. Both accept a list (strings, single-key objects, nulls) or an
// object keyed by relation name; object key order is preserved.
type RelationSpecs []RelationEntry

// UnmarshalJSON decodes `["a", "b:x,y", {"c": ["x"]}]` or `{"c": "x,y"}`.
func (r *RelationSpecs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	var out RelationSpecs
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		pos := 0
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) > 0 && item[0] == '{' {
				if err := eachJSONKey(item, func(key string, v any) {
					out = append(out, RelationEntry{Key: key, Keyed: true, Value: v})
				}); err != nil {
					return err
				}
				continue
			}
			var v any
			if err := json.Unmarshal(item, &v); err != nil {
				return err
			}
			out = append(out, RelationEntry{Key: strconv.Itoa(pos), Value: v})
			pos++
		}
	case '{':
		if err := eachJSONKey(data, func(key string, v any) {
			out = append(out, RelationEntry{Key: key, Keyed: true, Value: v})
		}); err != nil {
			return err
		}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		out = RelationSpecs{{Key: "0", Value: s}}
	default:
		return fmt.Errorf("relations: unsupported JSON value %s", string(data))
	}
	*r = out
	return nil
}

// eachJSONKey walks a JSON object in document order.
func eachJSONKey(data []byte, fn func(key string, v any)) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("relations: unexpected key %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("relations: %s: %w", key, err)
		}
		fn(key, v)
	}
	return nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (r *RelationSpecs) UnmarshalYAML(value *yaml.Node) error {
	var out RelationSpecs
	switch value.Kind {
	case yaml.SequenceNode:
		pos := 0
		for _, item := range value.Content {
			if item.Kind == yaml.MappingNode {
				entries, err := yamlMappingEntries(item)
				if err != nil {
					return err
				}
				out = append(out, entries...)
				continue
			}
			v, err := yamlValue(item)
			if err != nil {
				return err
			}
			out = append(out, RelationEntry{Key: strconv.Itoa(pos), Value: v})
			pos++
		}
	case yaml.MappingNode:
		entries, err := yamlMappingEntries(value)
		if err != nil {
			return err
		}
		out = entries
	case yaml.ScalarNode:
		v, err := yamlValue(value)
		if err != nil {
			return err
		}
		if v != nil {
			out = RelationSpecs{{Key: "0", Value: v}}
		}
	default:
		return fmt.Errorf("relations: line %d: unsupported YAML node", value.Line)
	}
	*r = out
	return nil
}

func yamlMappingEntries(node *yaml.Node) (RelationSpecs, error) {
	var out RelationSpecs
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, vNode := node.Content[i], node.Content[i+1]
		v, err := yamlValue(vNode)
		if err != nil {
			return nil, fmt.Errorf("relations: %s: %w", k.Value, err)
		}
		out = append(out, RelationEntry{Key: k.Value, Keyed: true, Value: v})
	}
	return out, nil
}

func yamlValue(node *yaml.Node) (any, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind == yaml.ScalarNode {
		return node.Value, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// CoerceRelations turns loosely typed input into relation entries.
// Unknown shapes give no entries.
func CoerceRelations(v any) []RelationEntry {
	switch t := v.(type) {
	case nil:
		return nil
	case RelationSpecs:
		return t
	case []RelationEntry:
		return t
	case string:
		if t == "" {
			return nil
		}
		return []RelationEntry{{Key: "0", Value: t}}
	case []string:
		out := make([]RelationEntry, 0, len(t))
		for i, s := range t {
			out = append(out, RelationEntry{Key: strconv.Itoa(i), Value: s})
		}
		return out
	case []any:
		var out []RelationEntry
		pos := 0
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, keyedEntries(m)...)
				continue
			}
			out = append(out, RelationEntry{Key: strconv.Itoa(pos), Value: item})
			pos++
		}
		return out
	case map[string]any:
		return keyedEntries(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return keyedEntries(m)
	case map[string][]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return keyedEntries(m)
	}
	return nil
}

// keyedEntries sorts keys: Go maps carry no order.
func keyedEntries(m map[string]any) []RelationEntry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]RelationEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, RelationEntry{Key: k, Keyed: true, Value: m[k]})
	}
	return out
}

// CoerceFields turns loosely typed input into a field list.
// A string is split on commas.
func CoerceFields(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return strings.Split(t, ",")
	case []string:
		return t
	case FieldSet:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
