// Package sparse resolves client-requested sparse fieldsets into the columns
// a data-access layer should fetch, for a primary resource and its
// eager-loaded relations.
//
// A SparseFields value is built once per request and never mutated
// afterwards, so it is safe for concurrent use.
package sparse

// SparseFields holds the normalized fieldsets and the field-to-column table.
type SparseFields struct {
	fields    FieldSet
	relations relationFields
	mappings  ColumnMap
}

// New builds a SparseFields. Empty fields mean [*].
func New(fields []string, relations []RelationEntry, mappings ColumnMap) *SparseFields {
	if mappings == nil {
		mappings = ColumnMap{}
	}
	return &SparseFields{
		fields:    normalizeFields(fields),
		relations: parseRelations(relations),
		mappings:  mappings,
	}
}

// Make builds a SparseFields from a request-like accessor.
// "fields" and "relations" are optional; src may be nil.
func Make(req Accessor, src MappingSource) *SparseFields {
	var rawFields, rawRelations any
	if req != nil {
		rawFields, _ = req.Lookup("fields")
		rawRelations, _ = req.Lookup("relations")
	}
	var mappings ColumnMap
	if src != nil {
		mappings = src.Mappings()
	}
	return New(CoerceFields(rawFields), CoerceRelations(rawRelations), mappings)
}

// Fields returns a copy of the primary fieldset.
func (s *SparseFields) Fields() FieldSet {
	return append(FieldSet(nil), s.fields...)
}

// RelationNames returns requested relations in declaration order.
func (s *SparseFields) RelationNames() []string {
	return append([]string(nil), s.relations.names...)
}

// RelationFields returns the fieldset of a requested relation.
func (s *SparseFields) RelationFields(name string) (FieldSet, bool) {
	fs, ok := s.relations.fields[name]
	if !ok {
		return nil, false
	}
	return append(FieldSet(nil), fs...), true
}

// Mappings returns the field-to-column table, so a SparseFields can itself
// serve as a MappingSource.
func (s *SparseFields) Mappings() ColumnMap {
	return s.mappings
}
