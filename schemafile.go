// FILE: lixenwraith/ini/schemafile.go
package ini

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// SchemaDescriptor is the serializable form of a Schema.
//
// TOML:
//
//	[[sections]]
//	name = "server"
//	comment = "listener settings"
//
//	  [[sections.options]]
//	  name = "port"
//	  type = "unsigned"
//	  optional = true
//	  default = "8080"
//	  min = 1
//	  max = 65535
type SchemaDescriptor struct {
	Sections []SectionDescriptor `toml:"sections" yaml:"sections"`
}

// SectionDescriptor describes one section schema.
type SectionDescriptor struct {
	Name     string             `toml:"name" yaml:"name"`
	Optional bool               `toml:"optional" yaml:"optional"`
	Comment  string             `toml:"comment" yaml:"comment"`
	Options  []OptionDescriptor `toml:"options" yaml:"options"`
}

// OptionDescriptor describes one option schema. Allowed, Min, Max and Check
// become the option's validator predicate. Check is a Lua expression over the
// value v, for example "v % 2 == 0".
type OptionDescriptor struct {
	Name     string   `toml:"name" yaml:"name"`
	Type     string   `toml:"type" yaml:"type"`
	List     bool     `toml:"list" yaml:"list"`
	Optional bool     `toml:"optional" yaml:"optional"`
	Default  string   `toml:"default" yaml:"default"`
	Comment  string   `toml:"comment" yaml:"comment"`
	Allowed  []string `toml:"allowed" yaml:"allowed"`
	Min      *float64 `toml:"min" yaml:"min"`
	Max      *float64 `toml:"max" yaml:"max"`
	Check    string   `toml:"check" yaml:"check"`
}

// LoadSchemaTOML decodes a TOML schema descriptor.
func LoadSchemaTOML(r io.Reader) (*Schema, error) {
	var desc SchemaDescriptor
	md, err := toml.NewDecoder(r).Decode(&desc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML schema: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("failed to parse TOML schema: unknown fields %s", strings.Join(keys, ", "))
	}
	return desc.Build()
}

// LoadSchemaYAML decodes a YAML schema descriptor.
func LoadSchemaYAML(r io.Reader) (*Schema, error) {
	var desc SchemaDescriptor
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
	}
	return desc.Build()
}

// LoadSchemaJSON decodes a JSON schema descriptor. Field names match the TOML form.
func LoadSchemaJSON(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON schema: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse JSON schema: malformed JSON")
	}
	root := gjson.ParseBytes(data)
	if err := checkJSONFields(root, "schema", "sections"); err != nil {
		return nil, err
	}

	var desc SchemaDescriptor
	sections, err := jsonArray(root, "sections")
	if err != nil {
		return nil, err
	}
	for _, sr := range sections {
		if err := checkJSONFields(sr, "section", "name", "optional", "comment", "options"); err != nil {
			return nil, err
		}
		sd := SectionDescriptor{
			Name:     sr.Get("name").String(),
			Optional: sr.Get("optional").Bool(),
			Comment:  sr.Get("comment").String(),
		}
		options, err := jsonArray(sr, "options")
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sd.Name, err)
		}
		for _, optRes := range options {
			od, err := jsonOption(optRes)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sd.Name, err)
			}
			sd.Options = append(sd.Options, od)
		}
		desc.Sections = append(desc.Sections, sd)
	}
	return desc.Build()
}

func jsonOption(optRes gjson.Result) (OptionDescriptor, error) {
	if err := checkJSONFields(optRes, "option", "name", "type", "list", "optional",
		"default", "comment", "allowed", "min", "max", "check"); err != nil {
		return OptionDescriptor{}, err
	}
	od := OptionDescriptor{
		Name:     optRes.Get("name").String(),
		Type:     optRes.Get("type").String(),
		List:     optRes.Get("list").Bool(),
		Optional: optRes.Get("optional").Bool(),
		Default:  optRes.Get("default").String(),
		Comment:  optRes.Get("comment").String(),
		Check:    optRes.Get("check").String(),
	}
	allowed, err := jsonArray(optRes, "allowed")
	if err != nil {
		return od, fmt.Errorf("option %q: %w", od.Name, err)
	}
	for _, a := range allowed {
		od.Allowed = append(od.Allowed, a.String())
	}
	for _, bound := range []struct {
		key    string
		target **float64
	}{{"min", &od.Min}, {"max", &od.Max}} {
		res := optRes.Get(bound.key)
		if !res.Exists() {
			continue
		}
		if res.Type != gjson.Number {
			return od, fmt.Errorf("option %q: %s must be a number", od.Name, bound.key)
		}
		x := res.Float()
		*bound.target = &x
	}
	return od, nil
}

// checkJSONFields rejects an object with keys outside known.
func checkJSONFields(obj gjson.Result, what string, known ...string) error {
	if !obj.IsObject() {
		return fmt.Errorf("%s must be a JSON object", what)
	}
	var err error
	obj.ForEach(func(key, _ gjson.Result) bool {
		if !slices.Contains(known, key.String()) {
			err = fmt.Errorf("%s: unknown field %q", what, key.String())
			return false
		}
		return true
	})
	return err
}

func jsonArray(obj gjson.Result, key string) ([]gjson.Result, error) {
	res := obj.Get(key)
	if !res.Exists() {
		return nil, nil
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("%s must be a JSON array", key)
	}
	return res.Array(), nil
}

// LoadSchemaFile reads a schema descriptor, choosing the format by extension.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := readFile(path, DefaultMaxFileSize)
	if err != nil {
		return nil, err
	}

	var schm *Schema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", ".tml":
		schm, err = LoadSchemaTOML(bytes.NewReader(data))
	case ".yaml", ".yml":
		schm, err = LoadSchemaYAML(bytes.NewReader(data))
	case ".json":
		schm, err = LoadSchemaJSON(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unable to determine schema format for file '%s'", path)
	}
	if err != nil {
		return nil, fmt.Errorf("schema file '%s': %w", path, err)
	}
	return schm, nil
}

// Build converts the descriptor into a Schema.
func (d SchemaDescriptor) Build() (*Schema, error) {
	schm := NewSchema()
	for _, sd := range d.Sections {
		if !IsValidIdentifier(sd.Name) {
			return nil, fmt.Errorf("invalid section name %q", sd.Name)
		}
		sect := NewSectionSchema(SectionSchemaParams{
			Name:        sd.Name,
			Requirement: requirementOf(sd.Optional),
			Comment:     sd.Comment,
		})
		for _, od := range sd.Options {
			opt, err := od.build()
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sd.Name, err)
			}
			if err := sect.AddOption(opt); err != nil {
				return nil, err
			}
		}
		if err := schm.AddSection(sect); err != nil {
			return nil, err
		}
	}
	return schm, nil
}

func (od OptionDescriptor) build() (*OptionSchema, error) {
	if !IsValidIdentifier(od.Name) {
		return nil, fmt.Errorf("invalid option name %q", od.Name)
	}
	kind, err := ParseKind(od.Type)
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", od.Name, err)
	}
	if (od.Min != nil || od.Max != nil) && !isNumeric(kind) {
		return nil, fmt.Errorf("option %q: min/max require a numeric type, got %s", od.Name, kind)
	}
	for _, bound := range []*float64{od.Min, od.Max} {
		if bound != nil && math.IsNaN(*bound) {
			return nil, fmt.Errorf("option %q: min/max must not be NaN", od.Name)
		}
	}

	validator, err := od.predicate()
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", od.Name, err)
	}

	cardinality := Single
	if od.List {
		cardinality = List
	}
	return &OptionSchema{
		name:         od.Name,
		kind:         kind,
		cardinality:  cardinality,
		requirement:  requirementOf(od.Optional),
		defaultValue: od.Default,
		comment:      od.Comment,
		validator:    validator,
	}, nil
}

// predicate combines the allowed set, numeric bounds and check expression,
// or returns nil when none is set.
func (od OptionDescriptor) predicate() (func(Value) bool, error) {
	if len(od.Allowed) == 0 && od.Min == nil && od.Max == nil && od.Check == "" {
		return nil, nil
	}
	var check func(Value) bool
	if od.Check != "" {
		var err error
		if check, err = compileCheck(od.Check); err != nil {
			return nil, err
		}
	}
	allowed := slices.Clone(od.Allowed)
	lo, hi := boundOf(od.Min), boundOf(od.Max)
	return func(v Value) bool {
		if len(allowed) > 0 && !slices.Contains(allowed, v.String()) {
			return false
		}
		if lo != nil || hi != nil {
			x, ok := numericValue(v)
			if !ok || (lo != nil && x.Cmp(lo) < 0) || (hi != nil && x.Cmp(hi) > 0) {
				return false
			}
		}
		return check == nil || check(v)
	}, nil
}

func requirementOf(optional bool) Requirement {
	if optional {
		return Optional
	}
	return Mandatory
}

func isNumeric(k Kind) bool {
	return k == KindSigned || k == KindUnsigned || k == KindFloat
}

// numericValue returns v as an exact big.Float so 64-bit integers compare
// against bounds without rounding. NaN is not numeric.
func numericValue(v Value) (*big.Float, bool) {
	switch v.Kind() {
	case KindSigned:
		return new(big.Float).SetInt64(v.i), true
	case KindUnsigned:
		return new(big.Float).SetUint64(v.u), true
	case KindFloat:
		if math.IsNaN(v.f) {
			return nil, false
		}
		return big.NewFloat(v.f), true
	default:
		return nil, false
	}
}

func boundOf(f *float64) *big.Float {
	if f == nil {
		return nil
	}
	return big.NewFloat(*f)
}

// Descriptor converts the schema back into its serializable form.
// Validator predicates cannot be represented and are dropped.
func (s *Schema) Descriptor() SchemaDescriptor {
	var d SchemaDescriptor
	for _, sect := range s.sections.items {
		sd := SectionDescriptor{
			Name:     sect.Name(),
			Optional: !sect.IsMandatory(),
			Comment:  sect.Comment(),
		}
		for _, opt := range sect.options.items {
			sd.Options = append(sd.Options, OptionDescriptor{
				Name:     opt.Name(),
				Type:     opt.Kind().String(),
				List:     opt.IsList(),
				Optional: !opt.IsMandatory(),
				Default:  opt.Default(),
				Comment:  opt.Comment(),
			})
		}
		d.Sections = append(d.Sections, sd)
	}
	return d
}
