package sparse

// Wildcard означает «все поля / без ограничения».
const Wildcard = "*"

// FieldSet is an ordered, deduplicated list of logical field names.
type FieldSet []string

// ColumnMap translates logical field names to column names.
// Values are either column names (flat map) or nested maps keyed by relation.
type ColumnMap map[string]any

// Mappings lets a plain ColumnMap act as a MappingSource.
func (m ColumnMap) Mappings() ColumnMap {
	return m
}

// MappingSource is anything able to produce its own field-to-column table.
type MappingSource interface {
	Mappings() ColumnMap
}

// MappingFunc adapts a function to MappingSource.
type MappingFunc func() ColumnMap

func (f MappingFunc) Mappings() ColumnMap {
	if f == nil {
		return nil
	}
	return f()
}

// Query is the only capability a relation loader has to expose:
// restrict the query to the given columns.
type Query interface {
	Select(columns []string) Query
}

// Accessor is a request-like key/value lookup.
type Accessor interface {
	Lookup(key string) (any, bool)
}

// Params is a plain map accessor.
type Params map[string]any

func (p Params) Lookup(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// RelationEntry is one raw relation declaration.
// Keyed=false means a positional element; Key then holds its index.
type RelationEntry struct {
	Key   string
	Keyed bool
	Value any
}
