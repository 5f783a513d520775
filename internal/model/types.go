package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"sparsefields/internal/sparse"
)

// Model описывает карту полей ресурса в конфигурации
type Model struct {
	Name      string               `yaml:"-"` // logical name of the model (file name)
	Table     string               `yaml:"table"`
	Fields    map[string]string    `yaml:"fields"`    // logical field -> column
	Relations map[string]*Relation `yaml:"relations"` // eager-loadable relations
	Defaults  Defaults             `yaml:"defaults"`  // used when the request asks for nothing
	PK        string               `yaml:"pk"`        // primary key column, "id" by default
}

// Relation описывает связь между моделями в конфигурации
type Relation struct {
	Type   string            `yaml:"type"`   // has_one, has_many, belongs_to
	Model  string            `yaml:"model"`  // название связанной модели (логическое)
	Table  string            `yaml:"table"`  // имя таблицы в SQL, по умолчанию таблица модели
	FK     string            `yaml:"fk"`     // внешний ключ
	PK     string            `yaml:"pk"`     // ключ, на который ссылается FK
	Order  string            `yaml:"order"`  // сортировка по умолчанию
	Fields map[string]string `yaml:"fields"` // собственная карта полей; иначе берётся из модели

	// для runtime (не сериализуется)
	_ModelRef *Model `yaml:"-"`
}

// Defaults is the sparse fieldset applied when a request omits one.
type Defaults struct {
	Fields    FieldList            `yaml:"fields"`
	Relations sparse.RelationSpecs `yaml:"relations"`
}

// GetPrimaryKey returns the primary key column, "id" unless configured.
func (m *Model) GetPrimaryKey() string {
	if m.PK != "" {
		return m.PK
	}
	return "id"
}

// GetModelRef возвращает ссылку на модель, если она уже загружена
func (r *Relation) GetModelRef() *Model {
	return r._ModelRef
}

// FieldMap returns the relation's own map, or the target model's one.
func (r *Relation) FieldMap() map[string]string {
	if len(r.Fields) > 0 {
		return r.Fields
	}
	if r._ModelRef != nil {
		return r._ModelRef.Fields
	}
	return nil
}

// FieldList принимает и список, и строку через запятую: "title, body".
type FieldList []string

func (l *FieldList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var out FieldList
		for _, part := range strings.Split(value.Value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*l = out
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	return fmt.Errorf("line %d: fields must be a list or a comma-separated string", value.Line)
}
