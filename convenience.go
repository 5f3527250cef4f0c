// File: lixenwraith/ini/convenience.go
package ini

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Quick loads configFile with env and CLI overrides and validates it against schm
// in relaxed mode. This is the recommended way to initialize configuration for most applications
func Quick(schm *Schema, envPrefix, configFile string) (*Config, error) {
	opts := DefaultLoadOptions()
	opts.EnvPrefix = envPrefix
	opts.Schema = schm
	opts.Validation.Mode = Relaxed
	return LoadWithOptions(configFile, os.Args[1:], opts)
}

// QuickCustom is like Quick with caller-supplied options
func QuickCustom(opts LoadOptions, configFile string) (*Config, error) {
	return LoadWithOptions(configFile, os.Args[1:], opts)
}

// MustQuick is like Quick but panics on error
func MustQuick(schm *Schema, envPrefix, configFile string) *Config {
	cfg, err := Quick(schm, envPrefix, configFile)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return cfg
}

// GenerateFlags creates a string flag named "section#option" for every option,
// defaulting to the option's current INI text
func (c *Config) GenerateFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("ini", flag.ContinueOnError)
	for _, sect := range c.sections.items {
		for _, opt := range sect.options.items {
			path := OptionPath(sect.Name(), opt.Name())
			fs.String(path, renderOption(opt), fmt.Sprintf("%s (%s)", path, opt.Kind()))
		}
	}
	return fs
}

// BindFlags applies every flag set on the command line back to its option as raw text
func (c *Config) BindFlags(fs *flag.FlagSet) error {
	var errs []error

	fs.Visit(func(f *flag.Flag) {
		section, option, ok := splitOptionPath(f.Name)
		if !ok {
			errs = append(errs, fmt.Errorf("flag %s: not a section#option path", f.Name))
			return
		}
		c.setOverride(section, NewOption(option, SplitList(f.Value.String())...))
	})

	if len(errs) > 0 {
		return fmt.Errorf("failed to bind %d flags: %w", len(errs), errs[0])
	}
	return nil
}

// Debug returns a formatted listing of every option with its kind and cardinality
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	for _, sect := range c.sections.items {
		fmt.Fprintf(&b, "  [%s]\n", sect.Name())
		for _, opt := range sect.options.items {
			card := "single"
			if opt.DeclaredList() {
				card = "list"
			}
			fmt.Fprintf(&b, "    %s: %s %s = %s\n", opt.Name(), opt.Kind(), card, renderOption(opt))
		}
	}
	return b.String()
}

// Dump writes the document to stdout as INI text
func (c *Config) Dump() error {
	return Write(os.Stdout, c)
}

// ExportTOML writes the document as a TOML table per section.
// Typed values keep their kind; lists become arrays.
func (c *Config) ExportTOML(w io.Writer) error {
	nested := make(map[string]any, c.Len())
	for _, sect := range c.sections.items {
		nested[sect.Name()] = sectionMap(sect)
	}
	if err := toml.NewEncoder(w).Encode(nested); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return nil
}

// ExportYAML writes the document as a YAML mapping of sections, preserving order.
func (c *Config) ExportYAML(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sect := range c.sections.items {
		body := &yaml.Node{Kind: yaml.MappingNode}
		for _, opt := range sect.options.items {
			var valueNode *yaml.Node
			if opt.DeclaredList() {
				valueNode = &yaml.Node{Kind: yaml.SequenceNode}
				for _, v := range opt.values {
					valueNode.Content = append(valueNode.Content, scalarNode(v))
				}
			} else {
				valueNode = scalarNode(opt.Value())
			}
			body.Content = append(body.Content, stringNode(opt.Name()), valueNode)
		}
		root.Content = append(root.Content, stringNode(sect.Name()), body)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("failed to marshal config data to YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the document as an indented JSON object of sections,
// preserving order. Non-finite floats are written as strings.
func (c *Config) ExportJSON(w io.Writer) error {
	doc := []byte("{}")
	var err error
	for _, sect := range c.sections.items {
		sectPath := jsonPathKey(sect.Name())
		if doc, err = sjson.SetRawBytes(doc, sectPath, []byte("{}")); err != nil {
			return fmt.Errorf("failed to marshal section %q to JSON: %w", sect.Name(), err)
		}
		for _, opt := range sect.options.items {
			var value any
			if opt.DeclaredList() {
				items := make([]any, opt.Len())
				for i, v := range opt.values {
					items[i] = jsonValue(v)
				}
				value = items
			} else {
				value = jsonValue(opt.Value())
			}
			if doc, err = sjson.SetBytes(doc, sectPath+"."+jsonPathKey(opt.Name()), value); err != nil {
				return fmt.Errorf("failed to marshal option %s to JSON: %w", OptionPath(sect.Name(), opt.Name()), err)
			}
		}
	}
	_, err = w.Write(pretty.Pretty(doc))
	return err
}

// jsonPathKey escapes name as a single path component.
func jsonPathKey(name string) string {
	key := gjson.Escape(name)
	if strings.HasPrefix(key, ":") {
		key = `\` + key
	}
	return key
}

func jsonValue(v Value) any {
	if v.Kind() == KindFloat && (math.IsNaN(v.f) || math.IsInf(v.f, 0)) {
		return v.String()
	}
	return nativeValue(v)
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// scalarNode tags v so YAML readers see its kind rather than guessing from text.
func scalarNode(v Value) *yaml.Node {
	switch v.Kind() {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v.b)}
	case KindSigned, KindUnsigned:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.String()}
	case KindFloat:
		text := v.String()
		switch {
		case math.IsNaN(v.f):
			text = ".nan"
		case math.IsInf(v.f, 1):
			text = ".inf"
		case math.IsInf(v.f, -1):
			text = "-.inf"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
	default:
		return stringNode(v.String())
	}
}

// renderOption returns the INI text of an option's value part
func renderOption(opt *Option) string {
	rendered := make([]string, opt.Len())
	for i, v := range opt.values {
		rendered[i] = renderValue(v)
	}
	return strings.Join(rendered, string(listDelimiter))
}
