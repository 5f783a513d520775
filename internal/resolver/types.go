package resolver

import "sparsefields/internal/sparse"

// ColumnsRequest is the /api/columns body.
type ColumnsRequest struct {
	Model     string               `json:"model"`
	Fields    []string             `json:"fields"`
	Relations sparse.RelationSpecs `json:"relations"`
}

// Lookup makes the request a sparse.Accessor.
func (r ColumnsRequest) Lookup(key string) (any, bool) {
	switch key {
	case "fields":
		return r.Fields, r.Fields != nil
	case "relations":
		return r.Relations, r.Relations != nil
	case "model":
		return r.Model, r.Model != ""
	}
	return nil, false
}

type RelationColumns struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

type Query struct {
	Name string `json:"name,omitempty"`
	SQL  string `json:"sql"`
}

type ColumnsResult struct {
	Model     string            `json:"model"`
	Columns   []string          `json:"columns"`
	Relations []RelationColumns `json:"relations"`
	Queries   []Query           `json:"queries"`
	Skipped   []string          `json:"skipped,omitempty"`
}
