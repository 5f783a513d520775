package sparse

// RelationSelector restricts an eager-loaded relation to its resolved columns.
type RelationSelector struct {
	Name    string
	Columns []string
}

// Apply hands a copy of the columns to q.
func (r RelationSelector) Apply(q Query) Query {
	return q.Select(append([]string(nil), r.Columns...))
}

// Relations returns one selector per requested relation, in declaration order.
func (s *SparseFields) Relations() []RelationSelector {
	out := make([]RelationSelector, 0, len(s.relations.names))
	for _, name := range s.relations.names {
		out = append(out, RelationSelector{
			Name:    name,
			Columns: s.ColumnsFor(name, s.relations.fields[name]),
		})
	}
	return out
}
