// File: lixenwraith/ini/section_schema.go
package ini

import "fmt"

// SectionSchemaParams declares a section.
type SectionSchemaParams struct {
	Name        string
	Requirement Requirement
	Comment     string
}

// SectionSchema describes a section and the options it may contain.
type SectionSchema struct {
	name        string
	requirement Requirement
	comment     string
	options     ordered[*OptionSchema]
}

// NewSectionSchema creates a section schema without options.
func NewSectionSchema(params SectionSchemaParams) *SectionSchema {
	return &SectionSchema{
		name:        params.Name,
		requirement: params.Requirement,
		comment:     params.Comment,
	}
}

// Name returns the section name.
func (s *SectionSchema) Name() string { return s.name }

// Requirement returns Mandatory or Optional.
func (s *SectionSchema) Requirement() Requirement { return s.requirement }

// IsMandatory reports whether the section must be present.
func (s *SectionSchema) IsMandatory() bool { return s.requirement == Mandatory }

// Comment returns the free-form comment.
func (s *SectionSchema) Comment() string { return s.comment }

// Len returns the number of declared options.
func (s *SectionSchema) Len() int { return s.options.len() }

// AddOption appends an option schema. Duplicate names fail with ErrDuplicateName.
func (s *SectionSchema) AddOption(opt *OptionSchema) error {
	if err := s.options.add(opt); err != nil {
		return fmt.Errorf("section schema %q: option %w", s.name, err)
	}
	return nil
}

// Option returns the option schema with the given name.
func (s *SectionSchema) Option(name string) (*OptionSchema, error) {
	opt, err := s.options.get(name)
	if err != nil {
		return nil, fmt.Errorf("section schema %q: option %w", s.name, err)
	}
	return opt, nil
}

// OptionAt returns the option schema at index i.
func (s *SectionSchema) OptionAt(i int) (*OptionSchema, error) {
	opt, err := s.options.at(i)
	if err != nil {
		return nil, fmt.Errorf("section schema %q: option %w", s.name, err)
	}
	return opt, nil
}

// Has reports whether an option schema with the given name exists.
func (s *SectionSchema) Has(name string) bool { return s.options.has(name) }

// Options returns the option schemas in declaration order.
func (s *SectionSchema) Options() []*OptionSchema { return s.options.all() }

// Clone returns a deep copy.
func (s *SectionSchema) Clone() *SectionSchema {
	c := *s
	c.options = s.options.cloneWith((*OptionSchema).Clone)
	return &c
}
