// File: lixenwraith/ini/doc.go

// Package ini parses, validates and writes typed INI configuration files.
//
// Parsing produces an untyped document in which every value is a string.
// Validating the document against a Schema assigns the declared kinds, injects
// defaults for absent optional sections and options, and runs per-option
// validator predicates. Writing renders the document back, optionally annotated
// with the schema's comments, requirement markers and defaults.
//
// Features:
//   - Six scalar kinds: bool, signed, unsigned, float, enum and string
//   - Lists with ',' or ':' delimiters, inferred per line
//   - Backslash escaping and ';' comments anywhere on a line
//   - Backward links: ${section#option}
//   - Strict and relaxed validation modes
//   - Schema descriptors in TOML, YAML or JSON, with Lua check expressions
//   - Export to TOML, YAML or JSON
//   - Environment and command-line overrides with configurable precedence
//   - Struct decoding via mapstructure
//
// Quick Start:
//
//	schm := ini.NewSchema()
//	srv := ini.NewSectionSchema(ini.SectionSchemaParams{Name: "server"})
//	_ = srv.AddOption(ini.NewOptionSchema(ini.OptionSchemaParams[uint64]{
//	    Name:        "port",
//	    Requirement: ini.Optional,
//	    Default:     "8080",
//	    Validator:   func(p uint64) bool { return p > 0 && p < 65536 },
//	}))
//	_ = schm.AddSection(srv)
//
//	cfg, err := ini.LoadFileWithSchema("app.ini", schm, ini.Strict)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opt, _ := cfg.Option("server", "port")
//	port, _ := opt.Uint64()
//
// Default Precedence (highest to lowest):
//  1. Command-line arguments (--server#port=9090)
//  2. Environment variables (MYAPP_SERVER_PORT=9090)
//  3. INI file
//  4. Schema defaults, injected during validation
//
// Thread Safety:
// Documents and schemas hold no global state. Concurrent reads are safe;
// concurrent mutation of one document must be synchronized by the caller.
package ini
