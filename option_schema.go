// File: lixenwraith/ini/option_schema.go
package ini

// Requirement distinguishes mandatory from optional schema items.
type Requirement uint8

const (
	// Mandatory items must be present in the document.
	Mandatory Requirement = iota
	// Optional items are injected from defaults when absent.
	Optional
)

// String returns "mandatory" or "optional".
func (r Requirement) String() string {
	if r == Optional {
		return "optional"
	}
	return "mandatory"
}

// Cardinality distinguishes single values from lists.
type Cardinality uint8

const (
	// Single expects exactly one value.
	Single Cardinality = iota
	// List expects a list of values.
	List
)

// String returns "single" or "list".
func (c Cardinality) String() string {
	if c == List {
		return "list"
	}
	return "single"
}

// OptionSchemaParams declares an option of the kind backing T.
// The zero value declares a mandatory single option without default or validator.
type OptionSchemaParams[T Scalar] struct {
	Name        string
	Requirement Requirement
	Cardinality Cardinality
	// Default is raw INI text, parsed only when the default is injected.
	Default string
	// Comment is free text and may span several lines.
	Comment string
	// Validator, if set, must accept every element after conversion.
	Validator func(T) bool
}

// OptionSchema describes the expected shape of one option.
type OptionSchema struct {
	name         string
	kind         Kind
	cardinality  Cardinality
	requirement  Requirement
	defaultValue string
	comment      string
	validator    func(Value) bool
}

// NewOptionSchema builds an option schema whose kind is derived from T.
func NewOptionSchema[T Scalar](params OptionSchemaParams[T]) *OptionSchema {
	var check func(Value) bool
	if params.Validator != nil {
		fn := params.Validator
		check = func(v Value) bool {
			x, err := As[T](v)
			return err == nil && fn(x)
		}
	}
	return &OptionSchema{
		name:         params.Name,
		kind:         kindOf[T](),
		cardinality:  params.Cardinality,
		requirement:  params.Requirement,
		defaultValue: params.Default,
		comment:      params.Comment,
		validator:    check,
	}
}

// Name returns the option name.
func (o *OptionSchema) Name() string { return o.name }

// Kind returns the declared scalar kind.
func (o *OptionSchema) Kind() Kind { return o.kind }

// Cardinality returns Single or List.
func (o *OptionSchema) Cardinality() Cardinality { return o.cardinality }

// IsList reports whether the option is declared as a list.
func (o *OptionSchema) IsList() bool { return o.cardinality == List }

// Requirement returns Mandatory or Optional.
func (o *OptionSchema) Requirement() Requirement { return o.requirement }

// IsMandatory reports whether the option must be present.
func (o *OptionSchema) IsMandatory() bool { return o.requirement == Mandatory }

// Default returns the raw default value text.
func (o *OptionSchema) Default() string { return o.defaultValue }

// Comment returns the free-form comment.
func (o *OptionSchema) Comment() string { return o.comment }

// HasValidator reports whether a validator predicate is set.
func (o *OptionSchema) HasValidator() bool { return o.validator != nil }

// Accepts runs the validator predicate against v. Without a validator every value is accepted.
func (o *OptionSchema) Accepts(v Value) bool {
	return o.validator == nil || o.validator(v)
}

// defaultItems returns the raw default split according to the declared cardinality.
func (o *OptionSchema) defaultItems() []string {
	if o.cardinality == List {
		return SplitList(o.defaultValue)
	}
	return []string{o.defaultValue}
}

// newDefaultOption builds a KindString option seeded from the default value.
func (o *OptionSchema) newDefaultOption() *Option {
	opt := NewOption(o.name, o.defaultItems()...)
	opt.list = o.cardinality == List
	return opt
}

// Clone returns a copy. The validator function is shared.
func (o *OptionSchema) Clone() *OptionSchema {
	c := *o
	return &c
}
