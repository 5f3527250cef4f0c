// File: lixenwraith/ini/section.go
package ini

import (
	"fmt"
)

// Section is a named, insertion-ordered collection of options with unique names.
type Section struct {
	name    string
	options ordered[*Option]
}

// NewSection creates an empty section.
func NewSection(name string) *Section {
	return &Section{name: name}
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Len returns the number of options.
func (s *Section) Len() int {
	return s.options.len()
}

// Add appends opt. The section takes ownership of opt.
// A duplicate name fails with ErrDuplicateName and leaves the section unchanged.
func (s *Section) Add(opt *Option) error {
	if err := s.options.add(opt); err != nil {
		return fmt.Errorf("section %q: %w", s.name, err)
	}
	return nil
}

// AddValues creates a KindString option from raw values and appends it.
func (s *Section) AddValues(name string, values ...string) (*Option, error) {
	opt := NewOption(name, values...)
	if err := s.Add(opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// Remove deletes the option with the given name.
func (s *Section) Remove(name string) error {
	if err := s.options.remove(name); err != nil {
		return fmt.Errorf("section %q: %w", s.name, err)
	}
	return nil
}

// Option returns the option with the given name.
func (s *Section) Option(name string) (*Option, error) {
	opt, err := s.options.get(name)
	if err != nil {
		return nil, fmt.Errorf("section %q: option %w", s.name, err)
	}
	return opt, nil
}

// OptionAt returns the option at index i in insertion order.
func (s *Section) OptionAt(i int) (*Option, error) {
	opt, err := s.options.at(i)
	if err != nil {
		return nil, fmt.Errorf("section %q: option %w", s.name, err)
	}
	return opt, nil
}

// Has reports whether an option with the given name exists.
func (s *Section) Has(name string) bool {
	return s.options.has(name)
}

// Options returns the options in insertion order.
func (s *Section) Options() []*Option {
	return s.options.all()
}

// Equal reports deep, order-sensitive equality.
func (s *Section) Equal(other *Section) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.name != other.name || s.Len() != other.Len() {
		return false
	}
	for i, opt := range s.options.items {
		if !opt.Equal(other.options.items[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (s *Section) Clone() *Section {
	return &Section{name: s.name, options: s.options.cloneWith((*Option).Clone)}
}
