// File: lixenwraith/ini/type.go
package ini

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the closed set of scalar kinds a Value can hold.
type Kind uint8

const (
	// KindString is plain text. Every value read from INI text starts as KindString.
	KindString Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindSigned is a signed 64-bit integer.
	KindSigned
	// KindUnsigned is an unsigned 64-bit integer.
	KindUnsigned
	// KindFloat is a 64-bit floating point number.
	KindFloat
	// KindEnum is an opaque string-backed tag.
	KindEnum
)

// String returns the kind name as used in schema descriptors.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str", "":
		return KindString, nil
	case "bool", "boolean":
		return KindBool, nil
	case "signed", "int", "int64":
		return KindSigned, nil
	case "unsigned", "uint", "uint64":
		return KindUnsigned, nil
	case "float", "float64", "double":
		return KindFloat, nil
	case "enum":
		return KindEnum, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Enum is a string-backed enumeration tag with no fixed value set.
type Enum string

// Scalar is the set of Go types backing the scalar kinds.
type Scalar interface {
	bool | int64 | uint64 | float64 | Enum | string
}

// kindOf returns the Kind backing the Go type T.
func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int64:
		return KindSigned
	case uint64:
		return KindUnsigned
	case float64:
		return KindFloat
	case Enum:
		return KindEnum
	default:
		return KindString
	}
}

// Value is one immutable scalar tagged with its kind.
// The zero Value is the empty string.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string // KindString and KindEnum payload
}

// BoolValue returns a KindBool value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// SignedValue returns a KindSigned value.
func SignedValue(i int64) Value { return Value{kind: KindSigned, i: i} }

// UnsignedValue returns a KindUnsigned value.
func UnsignedValue(u uint64) Value { return Value{kind: KindUnsigned, u: u} }

// FloatValue returns a KindFloat value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// EnumValue returns a KindEnum value.
func EnumValue(e Enum) Value { return Value{kind: KindEnum, s: string(e)} }

// StringValue returns a KindString value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ValueOf wraps a Go scalar into a Value of the matching kind.
func ValueOf[T Scalar](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return BoolValue(x)
	case int64:
		return SignedValue(x)
	case uint64:
		return UnsignedValue(x)
	case float64:
		return FloatValue(x)
	case Enum:
		return EnumValue(x)
	default:
		return StringValue(any(v).(string))
	}
}

// Kind returns the kind tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Equal reports whether v and other hold the same kind and payload.
// Floats compare by bit pattern so NaN equals itself.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindSigned:
		return v.i == other.i
	case KindUnsigned:
		return v.u == other.u
	case KindFloat:
		return math.Float64bits(v.f) == math.Float64bits(other.f)
	default:
		return v.s == other.s
	}
}

// String renders v as INI text without escaping. It is the inverse of ParseValue.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	case KindSigned:
		return strconv.FormatInt(v.i, 10)
	case KindUnsigned:
		return strconv.FormatUint(v.u, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Bool returns the boolean payload, decoding it from KindString if necessary.
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindString:
		return parseBool(v.s)
	}
	return false, mismatch(v.kind, KindBool)
}

// Int64 returns the signed payload, decoding it from KindString if necessary.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindSigned:
		return v.i, nil
	case KindString:
		return parseSigned(v.s)
	}
	return 0, mismatch(v.kind, KindSigned)
}

// Uint64 returns the unsigned payload, decoding it from KindString if necessary.
func (v Value) Uint64() (uint64, error) {
	switch v.kind {
	case KindUnsigned:
		return v.u, nil
	case KindString:
		return parseUnsigned(v.s)
	}
	return 0, mismatch(v.kind, KindUnsigned)
}

// Float64 returns the float payload, decoding it from KindString if necessary.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindString:
		return parseFloat(v.s)
	}
	return 0, mismatch(v.kind, KindFloat)
}

// Enum returns the enum tag. A KindString value is accepted as any tag.
func (v Value) Enum() (Enum, error) {
	switch v.kind {
	case KindEnum, KindString:
		return Enum(v.s), nil
	}
	return "", mismatch(v.kind, KindEnum)
}

// As converts v to the Go type T following the same rules as the typed getters.
// Requesting a string always succeeds and renders v.
func As[T Scalar](v Value) (T, error) {
	var out any
	var err error
	switch kindOf[T]() {
	case KindBool:
		out, err = v.Bool()
	case KindSigned:
		out, err = v.Int64()
	case KindUnsigned:
		out, err = v.Uint64()
	case KindFloat:
		out, err = v.Float64()
	case KindEnum:
		out, err = v.Enum()
	default:
		out = v.String()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// ParseValue decodes text into a Value of the requested kind.
func ParseValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindString:
		return StringValue(text), nil
	case KindEnum:
		return EnumValue(Enum(text)), nil
	case KindBool:
		b, err := parseBool(text)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case KindSigned:
		i, err := parseSigned(text)
		if err != nil {
			return Value{}, err
		}
		return SignedValue(i), nil
	case KindUnsigned:
		u, err := parseUnsigned(text)
		if err != nil {
			return Value{}, err
		}
		return UnsignedValue(u), nil
	case KindFloat:
		f, err := parseFloat(text)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	default:
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// Convert reparses v into the target kind through its textual form.
// An enum converts only to KindString.
func Convert(v Value, kind Kind) (Value, error) {
	if v.kind == kind {
		return v, nil
	}
	if v.kind == KindEnum && kind != KindString {
		return Value{}, mismatch(v.kind, kind)
	}
	return ParseValue(kind, v.String())
}

func mismatch(from, to Kind) error {
	return fmt.Errorf("%w: cannot convert %s to %s", ErrTypeMismatch, from, to)
}

// Literal sets accepted for booleans. Matching is case-sensitive.
var (
	trueLiterals  = map[string]struct{}{"1": {}, "t": {}, "y": {}, "on": {}, "yes": {}, "enabled": {}}
	falseLiterals = map[string]struct{}{"0": {}, "f": {}, "n": {}, "off": {}, "no": {}, "disabled": {}}
)

func parseBool(s string) (bool, error) {
	if _, ok := trueLiterals[s]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[s]; ok {
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, s)
}

// splitBinary reports whether s is a 0b literal and returns its sign and digits.
func splitBinary(s string) (neg bool, digits string, ok bool) {
	body := s
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		neg = body[0] == '-'
		body = body[1:]
	}
	if strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B") {
		return neg, body[2:], true
	}
	return false, "", false
}

func parseSigned(s string) (int64, error) {
	if neg, digits, ok := splitBinary(s); ok {
		if neg {
			digits = "-" + digits
		}
		i, err := strconv.ParseInt(digits, 2, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a signed integer: %w", ErrTypeMismatch, s, err)
		}
		return i, nil
	}
	if goOnlyLiteral(s) {
		return 0, fmt.Errorf("%w: %q is not a signed integer", ErrTypeMismatch, s)
	}
	i, err := strconv.ParseInt(cStyleOctal(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a signed integer: %w", ErrTypeMismatch, s, err)
	}
	return i, nil
}

func parseUnsigned(s string) (uint64, error) {
	if neg, digits, ok := splitBinary(s); ok && !neg {
		u, err := strconv.ParseUint(digits, 2, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an unsigned integer: %w", ErrTypeMismatch, s, err)
		}
		return u, nil
	}
	if goOnlyLiteral(s) {
		return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrTypeMismatch, s)
	}
	u, err := strconv.ParseUint(cStyleOctal(strings.TrimPrefix(s, "+")), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned integer: %w", ErrTypeMismatch, s, err)
	}
	return u, nil
}

// goOnlyLiteral reports forms that strconv base detection accepts but C does not:
// digit separators and the 0o/0O octal prefix.
func goOnlyLiteral(s string) bool {
	if strings.ContainsRune(s, '_') {
		return true
	}
	body := strings.TrimLeft(s, "+-")
	return len(body) > 1 && body[0] == '0' && (body[1] == 'o' || body[1] == 'O')
}

// cStyleOctal rewrites a leading-zero octal literal ("017") into Go's "0o17"
// so strconv base detection follows C rules.
func cStyleOctal(s string) string {
	sign := ""
	body := s
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		sign, body = body[:1], body[1:]
	}
	if len(body) > 1 && body[0] == '0' && body[1] >= '0' && body[1] <= '9' {
		return sign + "0o" + body[1:]
	}
	return s
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a float: %w", ErrTypeMismatch, s, err)
	}
	return f, nil
}
