// File: lixenwraith/ini/schema.go
package ini

import (
	"fmt"
	"strings"
)

// Schema is a declarative description of the expected document shape.
// A Schema is read-only during validation and can be shared between documents.
type Schema struct {
	sections ordered[*SectionSchema]
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// Len returns the number of declared sections.
func (s *Schema) Len() int { return s.sections.len() }

// AddSection appends a section schema. Duplicate names fail with ErrDuplicateName.
func (s *Schema) AddSection(sect *SectionSchema) error {
	if err := s.sections.add(sect); err != nil {
		return fmt.Errorf("schema: section %w", err)
	}
	return nil
}

// AddOption appends an option schema to the named section schema.
func (s *Schema) AddOption(section string, opt *OptionSchema) error {
	sect, err := s.Section(section)
	if err != nil {
		return err
	}
	return sect.AddOption(opt)
}

// Section returns the section schema with the given name.
func (s *Schema) Section(name string) (*SectionSchema, error) {
	sect, err := s.sections.get(name)
	if err != nil {
		return nil, fmt.Errorf("schema: section %w", err)
	}
	return sect, nil
}

// SectionAt returns the section schema at index i.
func (s *Schema) SectionAt(i int) (*SectionSchema, error) {
	sect, err := s.sections.at(i)
	if err != nil {
		return nil, fmt.Errorf("schema: section %w", err)
	}
	return sect, nil
}

// Has reports whether a section schema with the given name exists.
func (s *Schema) Has(name string) bool { return s.sections.has(name) }

// Sections returns the section schemas in declaration order.
func (s *Schema) Sections() []*SectionSchema { return s.sections.all() }

// Clone returns a deep copy.
func (s *Schema) Clone() *Schema {
	return &Schema{sections: s.sections.cloneWith((*SectionSchema).Clone)}
}

// String renders the schema as an annotated INI template.
func (s *Schema) String() string {
	var b strings.Builder
	_ = WriteSchema(&b, s)
	return b.String()
}
