// FILE: lixenwraith/ini/decode.go
package ini

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag read by Scan and ScanAll.
const TagName = "ini"

// Scan decodes the options of one section into target, a pointer to a struct
// whose fields are tagged `ini:"option name"`.
func (c *Config) Scan(section string, target any) error {
	sect, err := c.Section(section)
	if err != nil {
		return err
	}
	return unmarshal(sectionMap(sect), target, section)
}

// ScanAll decodes the whole document into target. Top-level fields map to
// sections and nested fields to options.
func (c *Config) ScanAll(target any) error {
	data := make(map[string]any, c.Len())
	for _, sect := range c.sections.items {
		data[sect.Name()] = sectionMap(sect)
	}
	return unmarshal(data, target, "")
}

// unmarshal is the single authoritative function for decoding documents
// into target structures. All public decoding methods delegate to this.
func unmarshal(data map[string]any, target any, path string) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       getDecodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		if path != "" {
			return fmt.Errorf("decode failed for section %q: %w", path, err)
		}
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// sectionMap flattens a section into option name -> native Go value.
// Lists become []any so mapstructure can decode them element-wise.
func sectionMap(sect *Section) map[string]any {
	m := make(map[string]any, sect.Len())
	for _, opt := range sect.options.items {
		if opt.DeclaredList() {
			items := make([]any, opt.Len())
			for i, v := range opt.values {
				items[i] = nativeValue(v)
			}
			m[opt.Name()] = items
			continue
		}
		m[opt.Name()] = nativeValue(opt.Value())
	}
	return m
}

// nativeValue unwraps v into its backing Go type.
func nativeValue(v Value) any {
	switch v.Kind() {
	case KindBool:
		return v.b
	case KindSigned:
		return v.i
	case KindUnsigned:
		return v.u
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

// getDecodeHook returns the composite decode hook for all type conversions
func getDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// INI literals
		stringToBoolHookFunc(),
		stringToIntHookFunc(),

		// Network types
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(string(listDelimiter)),
	)
}

// stringToBoolHookFunc accepts the INI boolean literals (yes/no, on/off, ...)
func stringToBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		return parseBool(data.(string))
	}
}

// stringToIntHookFunc accepts binary, hex and C-style octal integer literals
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t == reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return parseSigned(data.(string))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return parseUnsigned(data.(string))
		default:
			return data, nil
		}
	}
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		if t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}

		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}

		return ip, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
