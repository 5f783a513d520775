package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Разрешённые ключи для объектов
var allowedModelKeys = map[string]bool{
	"table":     true,
	"fields":    true,
	"relations": true,
	"defaults":  true,
	"pk":        true,
}

var allowedRelationKeys = map[string]bool{
	"type":   true,
	"model":  true,
	"table":  true,
	"fk":     true,
	"pk":     true,
	"order":  true,
	"fields": true,
}

var allowedDefaultsKeys = map[string]bool{
	"fields":    true,
	"relations": true,
}

var allowedRelationTypes = map[string]bool{
	"has_one":    true,
	"has_many":   true,
	"belongs_to": true,
}

func validateYAMLNode(node *yaml.Node, context string) error {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			if err := validateYAMLNode(child, "model"); err != nil {
				return err
			}
		}

	case yaml.MappingNode:
		var allowedKeys map[string]bool
		switch context {
		case "model":
			allowedKeys = allowedModelKeys
		case "relation":
			allowedKeys = allowedRelationKeys
		case "defaults":
			allowedKeys = allowedDefaultsKeys
		default:
			allowedKeys = nil // свободная форма
		}

		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			key := keyNode.Value

			if allowedKeys != nil && !allowedKeys[key] {
				return fmt.Errorf("line %d: unknown key '%s' in %s", keyNode.Line, key, context)
			}

			if context == "relation" && key == "type" && !allowedRelationTypes[valNode.Value] {
				return fmt.Errorf("line %d: unknown relation type '%s'", valNode.Line, valNode.Value)
			}

			// карта полей: только скаляры
			if context == "field-map" && valNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: field '%s' must map to a column name", valNode.Line, key)
			}

			nextContext := ""
			switch {
			case context == "model" && key == "relations":
				nextContext = "relations-map"
			case context == "relations-map":
				nextContext = "relation"
			case (context == "model" || context == "relation") && key == "fields":
				nextContext = "field-map"
			case context == "model" && key == "defaults":
				nextContext = "defaults"
			case context == "defaults":
				// relations в defaults принимают любые формы
				nextContext = "free"
			default:
				nextContext = context
			}

			if err := validateYAMLNode(valNode, nextContext); err != nil {
				return err
			}
		}

	case yaml.SequenceNode:
		if context == "field-map" || context == "relations-map" {
			return fmt.Errorf("line %d: %s must be a mapping", node.Line, context)
		}
		for _, item := range node.Content {
			if err := validateYAMLNode(item, context); err != nil {
				return err
			}
		}

	case yaml.ScalarNode:
		// скаляры не валидируем на ключи: они уже проверяются при разборе MappingNode
	}

	return nil
}
