// File: lixenwraith/ini/config.go
package ini

import (
	"fmt"
	"strings"
)

// Config is a parsed INI document: an insertion-ordered collection of sections
// with unique names. A Config is not safe for concurrent mutation.
type Config struct {
	sections ordered[*Section]
}

// New creates an empty document.
func New() *Config {
	return &Config{}
}

// Len returns the number of sections.
func (c *Config) Len() int {
	return c.sections.len()
}

// AddSection appends sect. The document takes ownership of sect.
// A duplicate name fails with ErrDuplicateName and leaves the document unchanged.
func (c *Config) AddSection(sect *Section) error {
	if err := c.sections.add(sect); err != nil {
		return fmt.Errorf("section %w", err)
	}
	return nil
}

// NewSection creates an empty section, appends it and returns it.
func (c *Config) NewSection(name string) (*Section, error) {
	sect := NewSection(name)
	if err := c.AddSection(sect); err != nil {
		return nil, err
	}
	return sect, nil
}

// RemoveSection deletes the section with the given name.
func (c *Config) RemoveSection(name string) error {
	if err := c.sections.remove(name); err != nil {
		return fmt.Errorf("section %w", err)
	}
	return nil
}

// Section returns the section with the given name.
func (c *Config) Section(name string) (*Section, error) {
	sect, err := c.sections.get(name)
	if err != nil {
		return nil, fmt.Errorf("section %w", err)
	}
	return sect, nil
}

// SectionAt returns the section at index i in insertion order.
func (c *Config) SectionAt(i int) (*Section, error) {
	sect, err := c.sections.at(i)
	if err != nil {
		return nil, fmt.Errorf("section %w", err)
	}
	return sect, nil
}

// HasSection reports whether a section with the given name exists.
func (c *Config) HasSection(name string) bool {
	return c.sections.has(name)
}

// Sections returns the sections in insertion order.
func (c *Config) Sections() []*Section {
	return c.sections.all()
}

// AddOption appends opt to the named section.
func (c *Config) AddOption(section string, opt *Option) error {
	sect, err := c.Section(section)
	if err != nil {
		return err
	}
	return sect.Add(opt)
}

// RemoveOption deletes an option from the named section.
func (c *Config) RemoveOption(section, option string) error {
	sect, err := c.Section(section)
	if err != nil {
		return err
	}
	return sect.Remove(option)
}

// Option looks up an option by section and option name.
func (c *Config) Option(section, option string) (*Option, error) {
	sect, err := c.Section(section)
	if err != nil {
		return nil, err
	}
	return sect.Option(option)
}

// Validate checks the document against schm in the given mode, injecting
// defaults and converting values in place. See ValidateWithOptions.
func (c *Config) Validate(schm *Schema, mode Mode) error {
	return Validate(c, schm, mode)
}

// Equal reports deep, order- and kind-sensitive equality.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Len() != other.Len() {
		return false
	}
	for i, sect := range c.sections.items {
		if !sect.Equal(other.sections.items[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the document.
func (c *Config) Clone() *Config {
	return &Config{sections: c.sections.cloneWith((*Section).Clone)}
}

// String renders the document as INI text.
func (c *Config) String() string {
	var b strings.Builder
	_ = Write(&b, c)
	return b.String()
}
