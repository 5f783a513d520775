package model

import (
	"fmt"
	"unicode"
)

// LinkModelRelations resolves relation targets and fills key defaults.
func LinkModelRelations() error {
	for modelName, model := range Registry {
		if model.Table == "" {
			return fmt.Errorf("model '%s' has no table", modelName)
		}
		for relName, rel := range model.Relations {
			if rel == nil {
				return fmt.Errorf("relation '%s.%s' is empty", modelName, relName)
			}
			// имя связи не должно совпадать с полем: в карте колонок они делят ключи
			if _, clash := model.Fields[relName]; clash {
				return fmt.Errorf("relation '%s.%s' shadows a field with the same name", modelName, relName)
			}
			targetModel, ok := Registry[rel.Model]
			if !ok {
				return fmt.Errorf("invalid relation: model '%s' not found in '%s.%s'", rel.Model, modelName, relName)
			}
			rel._ModelRef = targetModel

			if rel.Table == "" {
				rel.Table = targetModel.Table
			}
			// Присваиваем FK по умолчанию, если не задан
			switch rel.Type {
			case "belongs_to":
				// FK в текущей модели, указывает на связанную
				if rel.FK == "" {
					rel.FK = toSnakeCase(relName) + "_id"
				}
				if rel.PK == "" {
					rel.PK = targetModel.GetPrimaryKey()
				}
			case "has_one", "has_many":
				// FK в связанной модели, указывает на текущую
				if rel.FK == "" {
					rel.FK = toSnakeCase(modelName) + "_id"
				}
				if rel.PK == "" {
					rel.PK = model.GetPrimaryKey()
				}
			default:
				return fmt.Errorf("relation '%s.%s' must have valid Type (has_many, has_one, belongs_to), got '%s'", modelName, relName, rel.Type)
			}
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}
