package model

import "fmt"

var Registry = map[string]*Model{}

// InitRegistry loads and links every model in dir, replacing the registry.
func InitRegistry(dir string) error {
	Registry = map[string]*Model{}
	if err := LoadModelsFromDir(dir); err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	if err := LinkModelRelations(); err != nil {
		return fmt.Errorf("link error: %w", err)
	}
	return nil
}

func (m *Model) GetRelation(name string) *Relation {
	if m == nil || m.Relations == nil {
		return nil
	}
	return m.Relations[name]
}
