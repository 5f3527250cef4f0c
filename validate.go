// File: lixenwraith/ini/validate.go
package ini

import (
	"fmt"
	"log/slog"
)

// Mode is the validation policy for items the schema does not declare.
type Mode uint8

const (
	// Strict rejects sections and options absent from the schema.
	Strict Mode = iota
	// Relaxed leaves undeclared sections and options untouched.
	Relaxed
)

// String returns "strict" or "relaxed".
func (m Mode) String() string {
	if m == Relaxed {
		return "relaxed"
	}
	return "strict"
}

// CardinalityPolicy selects how list-vs-single is decided during validation.
type CardinalityPolicy uint8

const (
	// CardinalityByLength treats an option as a list only when it holds more than
	// one value, so a one-element option satisfies both single and list schemas.
	CardinalityByLength CardinalityPolicy = iota
	// CardinalityExplicit uses the list flag recorded when the option was built:
	// single schemas reject declared lists and list schemas reject declared singles.
	CardinalityExplicit
)

// ValidateOptions configures a validation pass.
type ValidateOptions struct {
	// Mode decides how undeclared sections and options are treated.
	Mode Mode

	// Cardinality selects the list detection policy.
	// Default: CardinalityByLength
	Cardinality CardinalityPolicy

	// Logger receives debug records for injected defaults and converted options.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultValidateOptions returns strict, length-based validation without logging.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{
		Mode:        Strict,
		Cardinality: CardinalityByLength,
	}
}

// Validate checks cfg against schm in the given mode. See ValidateWithOptions.
func Validate(cfg *Config, schm *Schema, mode Mode) error {
	opts := DefaultValidateOptions()
	opts.Mode = mode
	return ValidateWithOptions(cfg, schm, opts)
}

// ValidateWithOptions walks cfg against schm in schema-declared order.
// It mutates cfg in place: absent optional sections and options are created from
// their defaults and values are reparsed into their declared kinds.
// It stops at the first violation and returns a *ValidationError.
// Neither cfg nor schm is retained.
func ValidateWithOptions(cfg *Config, schm *Schema, opts ValidateOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := &validator{opts: opts, log: logger}
	return v.validateConfig(cfg, schm)
}

type validator struct {
	opts ValidateOptions
	log  *slog.Logger
}

func (v *validator) validateConfig(cfg *Config, schm *Schema) error {
	for _, sectSchema := range schm.Sections() {
		name := sectSchema.Name()
		if sect, err := cfg.sections.get(name); err == nil {
			if err := v.validateSection(sect, sectSchema); err != nil {
				return err
			}
			continue
		}
		if sectSchema.IsMandatory() {
			return &ValidationError{Section: name, Code: CodeMissingSection, Message: "mandatory section missing"}
		}

		sect := NewSection(name)
		for _, optSchema := range sectSchema.Options() {
			opt := optSchema.newDefaultOption()
			if err := sect.Add(opt); err != nil {
				return err
			}
			if err := v.validateOption(name, opt, optSchema); err != nil {
				return err
			}
		}
		if err := cfg.AddSection(sect); err != nil {
			return err
		}
		v.log.Debug("injected default section", "section", name, "options", sect.Len())
	}

	for _, sect := range cfg.sections.items {
		if schm.Has(sect.Name()) {
			continue
		}
		if v.opts.Mode == Strict {
			return &ValidationError{Section: sect.Name(), Code: CodeUnknownSection, Message: "unknown section"}
		}
	}
	return nil
}

func (v *validator) validateSection(sect *Section, sectSchema *SectionSchema) error {
	for _, optSchema := range sectSchema.Options() {
		if opt, err := sect.options.get(optSchema.Name()); err == nil {
			if err := v.validateOption(sect.Name(), opt, optSchema); err != nil {
				return err
			}
			continue
		}
		if optSchema.IsMandatory() {
			return &ValidationError{
				Section: sect.Name(),
				Option:  optSchema.Name(),
				Code:    CodeMissingOption,
				Message: "mandatory option missing",
			}
		}

		opt := optSchema.newDefaultOption()
		if err := sect.Add(opt); err != nil {
			return err
		}
		if err := v.validateOption(sect.Name(), opt, optSchema); err != nil {
			return err
		}
		v.log.Debug("injected default option", "section", sect.Name(), "option", opt.Name(), "default", optSchema.Default())
	}

	if v.opts.Mode != Strict {
		return nil
	}
	for _, opt := range sect.options.items {
		if !sectSchema.Has(opt.Name()) {
			return &ValidationError{Section: sect.Name(), Option: opt.Name(), Code: CodeUnknownOption, Message: "unknown option"}
		}
	}
	return nil
}

func (v *validator) validateOption(section string, opt *Option, optSchema *OptionSchema) error {
	fail := func(code ValidationCode, msg string, err error) error {
		return &ValidationError{Section: section, Option: opt.Name(), Code: code, Message: msg, Err: err}
	}

	isList := opt.IsList()
	if v.opts.Cardinality == CardinalityExplicit {
		isList = opt.DeclaredList()
		if optSchema.IsList() && !isList {
			return fail(CodeCardinality, "single value given, list expected", nil)
		}
	}
	if !optSchema.IsList() && isList {
		return fail(CodeCardinality, "list given, single value expected", nil)
	}

	if opt.Kind() != optSchema.Kind() {
		converted := make([]Value, opt.Len())
		for i, val := range opt.values {
			c, err := Convert(val, optSchema.Kind())
			if err != nil {
				return fail(CodeTypeCoercion, fmt.Sprintf("element %d cannot be converted to %s", i, optSchema.Kind()), err)
			}
			converted[i] = c
		}
		v.log.Debug("converted option", "section", section, "option", opt.Name(), "from", opt.Kind().String(), "to", optSchema.Kind().String())
		opt.replace(converted)
	}

	for i, val := range opt.values {
		if !optSchema.Accepts(val) {
			return fail(CodeRejected, fmt.Sprintf("element %d (%q) rejected by validator", i, val.String()), nil)
		}
	}
	return nil
}
