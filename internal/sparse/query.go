package sparse

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery reads a raw URL query into Params, keeping parameter order:
//
//	fields=a,b  fields[]=a
//	relations[]=author:name,email  relations[tags]=id,title  relations[tags][]=id
//
// Other keys are kept as plain strings (last value wins).
func ParseQuery(rawQuery string) Params {
	params := Params{}
	var fields []string
	var specs RelationSpecs
	listIdx := map[string]int{}
	pos := 0
	seenFields, seenRelations := false, false

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		base, sub, hasSub := splitBracket(key)
		switch base {
		case "fields":
			seenFields = true
			if hasSub {
				fields = append(fields, value)
			} else {
				fields = append(fields, strings.Split(value, ",")...)
			}
		case "relations":
			seenRelations = true
			name, list := sub, false
			if strings.HasSuffix(name, "[]") {
				name, list = strings.TrimSuffix(name, "[]"), true
			}
			switch {
			case !hasSub || name == "":
				specs = append(specs, RelationEntry{Key: strconv.Itoa(pos), Value: value})
				pos++
			case list:
				if i, ok := listIdx[name]; ok {
					specs[i].Value = append(specs[i].Value.([]string), value)
					continue
				}
				listIdx[name] = len(specs)
				specs = append(specs, RelationEntry{Key: name, Keyed: true, Value: []string{value}})
			default:
				delete(listIdx, name)
				specs = append(specs, RelationEntry{Key: name, Keyed: true, Value: value})
			}
		default:
			params[key] = value
		}
	}

	if seenFields {
		params["fields"] = fields
	}
	if seenRelations {
		params["relations"] = specs
	}
	return params
}

// splitBracket splits "relations[tags][]" into "relations", "tags[]".
func splitBracket(key string) (base, sub string, ok bool) {
	i := strings.IndexByte(key, '[')
	if i < 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	inner := key[i+1 : len(key)-1]
	// "a[b][]" -> inner "b][" ; восстанавливаем "b[]"
	if strings.HasSuffix(inner, "][") {
		inner = strings.TrimSuffix(inner, "][") + "[]"
	}
	return key[:i], inner, true
}
