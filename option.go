// File: lixenwraith/ini/option.go
package ini

import (
	"fmt"
	"slices"
)

// Option is a named, ordered sequence of same-kind values.
// It always holds at least one value.
type Option struct {
	name   string
	values []Value
	// list records whether the option was built as a list, independent of its length.
	list bool
}

// NewOption creates a KindString option from raw text values.
// With no values the option holds a single empty string.
func NewOption(name string, values ...string) *Option {
	if len(values) == 0 {
		values = []string{""}
	}
	opt := &Option{name: name, values: make([]Value, len(values)), list: len(values) > 1}
	for i, v := range values {
		opt.values[i] = StringValue(v)
	}
	return opt
}

// NewValueOption creates a single-valued option.
func NewValueOption(name string, value Value) *Option {
	return &Option{name: name, values: []Value{value}}
}

// NewListOption creates an option explicitly marked as a list.
func NewListOption(name string, values []Value) (*Option, error) {
	if err := checkValues(values); err != nil {
		return nil, fmt.Errorf("option %q: %w", name, err)
	}
	return &Option{name: name, values: slices.Clone(values), list: true}, nil
}

// checkValues enforces the non-empty, same-kind invariant.
func checkValues(values []Value) error {
	if len(values) == 0 {
		return ErrEmptyOption
	}
	kind := values[0].Kind()
	for i, v := range values[1:] {
		if v.Kind() != kind {
			return fmt.Errorf("%w: element %d is %s, expected %s", ErrTypeMismatch, i+1, v.Kind(), kind)
		}
	}
	return nil
}

// Name returns the option name.
func (o *Option) Name() string {
	return o.name
}

// Kind returns the kind shared by all values.
func (o *Option) Kind() Kind {
	return o.values[0].Kind()
}

// IsList reports whether the option holds more than one value.
// A one-element list is indistinguishable from a single value here; see DeclaredList.
func (o *Option) IsList() bool {
	return len(o.values) > 1
}

// DeclaredList reports whether the option was built as a list, even with one element.
func (o *Option) DeclaredList() bool {
	return o.list || len(o.values) > 1
}

// Len returns the number of values.
func (o *Option) Len() int {
	return len(o.values)
}

// Value returns the first (or only) value.
func (o *Option) Value() Value {
	return o.values[0]
}

// Values returns a copy of all values.
func (o *Option) Values() []Value {
	return slices.Clone(o.values)
}

// At returns the value at index i.
func (o *Option) At(i int) (Value, error) {
	if i < 0 || i >= len(o.values) {
		return Value{}, fmt.Errorf("%w: index %d in option %q", ErrNotFound, i, o.name)
	}
	return o.values[i], nil
}

// SetValue replaces the whole sequence with one value, changing the kind if needed.
func (o *Option) SetValue(v Value) {
	o.values = []Value{v}
	o.list = false
}

// SetValues replaces the whole sequence with a list, changing the kind if needed.
func (o *Option) SetValues(values []Value) error {
	if err := checkValues(values); err != nil {
		return fmt.Errorf("option %q: %w", o.name, err)
	}
	o.values = slices.Clone(values)
	o.list = true
	return nil
}

// Append adds v at the end of the list. v must have the option's kind.
func (o *Option) Append(v Value) error {
	if v.Kind() != o.Kind() {
		return fmt.Errorf("option %q: %w", o.name, mismatch(v.Kind(), o.Kind()))
	}
	o.values = append(o.values, v)
	o.list = true
	return nil
}

// Insert places v at position pos, shifting later values. pos may equal Len.
func (o *Option) Insert(pos int, v Value) error {
	if v.Kind() != o.Kind() {
		return fmt.Errorf("option %q: %w", o.name, mismatch(v.Kind(), o.Kind()))
	}
	if pos < 0 || pos > len(o.values) {
		return fmt.Errorf("%w: position %d in option %q", ErrNotFound, pos, o.name)
	}
	o.values = slices.Insert(o.values, pos, v)
	o.list = true
	return nil
}

// Remove deletes the first value equal to v.
func (o *Option) Remove(v Value) error {
	if v.Kind() != o.Kind() {
		return fmt.Errorf("option %q: %w", o.name, mismatch(v.Kind(), o.Kind()))
	}
	i := slices.IndexFunc(o.values, v.Equal)
	if i < 0 {
		return fmt.Errorf("%w: value %q in option %q", ErrNotFound, v.String(), o.name)
	}
	return o.RemoveAt(i)
}

// RemoveAt deletes the value at position pos. The last remaining value cannot be removed.
func (o *Option) RemoveAt(pos int) error {
	if pos < 0 || pos >= len(o.values) {
		return fmt.Errorf("%w: position %d in option %q", ErrNotFound, pos, o.name)
	}
	if len(o.values) == 1 {
		return fmt.Errorf("option %q: %w", o.name, ErrEmptyOption)
	}
	o.values = slices.Delete(o.values, pos, pos+1)
	return nil
}

// replace swaps in already-checked values, keeping the declared cardinality.
func (o *Option) replace(values []Value) {
	o.values = values
}

// Get returns the first value as T. See Value.As for conversion rules.
func Get[T Scalar](o *Option) (T, error) {
	v, err := As[T](o.values[0])
	if err != nil {
		return v, fmt.Errorf("option %q: %w", o.name, err)
	}
	return v, nil
}

// GetList returns every value as T.
func GetList[T Scalar](o *Option) ([]T, error) {
	out := make([]T, len(o.values))
	for i, v := range o.values {
		x, err := As[T](v)
		if err != nil {
			return nil, fmt.Errorf("option %q element %d: %w", o.name, i, err)
		}
		out[i] = x
	}
	return out, nil
}

// Bool returns the first value as a boolean.
func (o *Option) Bool() (bool, error) { return Get[bool](o) }

// Int64 returns the first value as a signed integer.
func (o *Option) Int64() (int64, error) { return Get[int64](o) }

// Uint64 returns the first value as an unsigned integer.
func (o *Option) Uint64() (uint64, error) { return Get[uint64](o) }

// Float64 returns the first value as a float.
func (o *Option) Float64() (float64, error) { return Get[float64](o) }

// Enum returns the first value as an enum tag.
func (o *Option) Enum() (Enum, error) { return Get[Enum](o) }

// String returns the first value rendered as text.
func (o *Option) String() string { return o.values[0].String() }

// BoolList returns all values as booleans.
func (o *Option) BoolList() ([]bool, error) { return GetList[bool](o) }

// Int64List returns all values as signed integers.
func (o *Option) Int64List() ([]int64, error) { return GetList[int64](o) }

// Uint64List returns all values as unsigned integers.
func (o *Option) Uint64List() ([]uint64, error) { return GetList[uint64](o) }

// Float64List returns all values as floats.
func (o *Option) Float64List() ([]float64, error) { return GetList[float64](o) }

// EnumList returns all values as enum tags.
func (o *Option) EnumList() ([]Enum, error) { return GetList[Enum](o) }

// StringList returns all values rendered as text.
func (o *Option) StringList() []string {
	out := make([]string, len(o.values))
	for i, v := range o.values {
		out[i] = v.String()
	}
	return out
}

// Equal reports deep, order- and kind-sensitive equality.
func (o *Option) Equal(other *Option) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.name == other.name && slices.EqualFunc(o.values, other.values, Value.Equal)
}

// Clone returns a deep copy.
func (o *Option) Clone() *Option {
	return &Option{name: o.name, values: slices.Clone(o.values), list: o.list}
}
