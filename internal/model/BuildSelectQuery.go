package model

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"sparsefields/internal/logger"
	"sparsefields/internal/sparse"
)

// RelationQuery adapts squirrel.SelectBuilder to sparse.Query.
// KeyColumn, if set, is always selected so rows can be stitched to parents.
type RelationQuery struct {
	Builder   squirrel.SelectBuilder
	KeyColumn string
}

func (q RelationQuery) Select(columns []string) sparse.Query {
	q.Builder = q.Builder.Columns(withKey(columns, q.KeyColumn)...)
	return q
}

// withKey appends key unless columns already cover it.
func withKey(columns []string, key string) []string {
	if key == "" {
		return columns
	}
	for _, c := range columns {
		if c == key || c == sparse.Wildcard {
			return columns
		}
	}
	return append(columns, key)
}

// SelectPlan is the set of queries needed to load a sparse resource.
type SelectPlan struct {
	Main      squirrel.SelectBuilder
	Relations []RelationPlan
	Skipped   []string // requested relations the model does not define
}

type RelationPlan struct {
	Name     string
	Relation *Relation
	Query    squirrel.SelectBuilder
}

// BuildSelectQuery строит SELECT-запросы для основной модели и её связей.
// parentKeys is bound to the relation filters (nil for a preview).
func (m *Model) BuildSelectQuery(sf *sparse.SparseFields, parentKeys any) (*SelectPlan, error) {
	if m.Table == "" {
		return nil, fmt.Errorf("model '%s' has no table", m.Name)
	}

	plan := &SelectPlan{}
	// ключи, без которых связи не склеить
	var mainKeys []string

	for _, sel := range sf.Relations() {
		rel := m.GetRelation(sel.Name)
		if rel == nil {
			logger.Warn("unknown_relation", map[string]any{
				"model":    m.Name,
				"relation": sel.Name,
			})
			plan.Skipped = append(plan.Skipped, sel.Name)
			continue
		}

		// belongs_to: ищем по PK связанной модели, has_*: по FK в связанной таблице
		matchColumn, parentColumn := rel.FK, rel.PK
		if rel.Type == "belongs_to" {
			matchColumn, parentColumn = rel.PK, rel.FK
		}
		mainKeys = append(mainKeys, parentColumn)

		base := squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar).
			From(rel.Table).
			Where(fmt.Sprintf("%s = ANY(?)", matchColumn), parentKeys)
		if rel.Order != "" {
			base = base.OrderBy(rel.Order)
		}

		q, ok := sel.Apply(RelationQuery{Builder: base, KeyColumn: matchColumn}).(RelationQuery)
		if !ok {
			return nil, fmt.Errorf("relation '%s.%s': unexpected query type", m.Name, sel.Name)
		}
		plan.Relations = append(plan.Relations, RelationPlan{Name: sel.Name, Relation: rel, Query: q.Builder})
	}

	columns := sf.Columns()
	for _, key := range mainKeys {
		columns = withKey(columns, key)
	}
	plan.Main = squirrel.SelectBuilder{}.PlaceholderFormat(squirrel.Dollar).
		Columns(columns...).
		From(m.Table)

	return plan, nil
}

// RenderedQuery is a query turned into SQL text.
type RenderedQuery struct {
	Name string `json:"name,omitempty"`
	SQL  string `json:"sql"`
	Args []any  `json:"args,omitempty"`
}

// ToSql renders every query of the plan, main first.
func (p *SelectPlan) ToSql() ([]RenderedQuery, error) {
	out := make([]RenderedQuery, 0, len(p.Relations)+1)
	sqlStr, args, err := p.Main.ToSql()
	if err != nil {
		return nil, fmt.Errorf("main query: %w", err)
	}
	out = append(out, RenderedQuery{SQL: sqlStr, Args: args})
	for _, rp := range p.Relations {
		sqlStr, args, err := rp.Query.ToSql()
		if err != nil {
			return nil, fmt.Errorf("relation %s: %w", rp.Name, err)
		}
		out = append(out, RenderedQuery{Name: rp.Name, SQL: sqlStr, Args: args})
	}
	return out, nil
}
