package resolver

import (
	"context"
	"errors"
	"fmt"

	"sparsefields/internal/logger"
	"sparsefields/internal/model"
	"sparsefields/internal/sparse"
)

var ErrModelNotFound = errors.New("model not found")

// Resolve строит колонки и превью SQL для запроса разреженного набора полей.
// req supplies "fields" and "relations"; nothing is executed.
func Resolve(ctx context.Context, modelName string, req sparse.Accessor) (*ColumnsResult, error) {
	m, ok := model.Registry[modelName]
	if !ok {
		return nil, fmt.Errorf("resolver: %w: %s", ErrModelNotFound, modelName)
	}

	mappings, err := model.GetMappingsFromRedisOrBuild(ctx, modelName)
	if err != nil {
		logger.Error("fieldmap_error", map[string]any{
			"model": modelName,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("resolver: field map: %w", err)
	}

	sf := m.SparseFields(req, mappings)

	plan, err := m.BuildSelectQuery(sf, nil)
	if err != nil {
		return nil, err
	}
	rendered, err := plan.ToSql()
	if err != nil {
		return nil, err
	}

	res := &ColumnsResult{
		Model:     modelName,
		Columns:   sf.Columns(),
		Relations: make([]RelationColumns, 0, len(plan.Relations)),
		Queries:   make([]Query, 0, len(rendered)),
		Skipped:   plan.Skipped,
	}
	for _, sel := range sf.Relations() {
		res.Relations = append(res.Relations, RelationColumns{Name: sel.Name, Columns: sel.Columns})
	}
	for _, q := range rendered {
		res.Queries = append(res.Queries, Query{Name: q.Name, SQL: q.SQL})
	}

	logger.Debug("sql", map[string]any{
		"model":   modelName,
		"queries": res.Queries,
	})
	return res, nil
}
