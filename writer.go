// File: lixenwraith/ini/writer.go
package ini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes cfg as plain INI text.
// Each section renders as "[name]" followed by one "name = v1,v2" line per option.
func Write(w io.Writer, cfg *Config) error {
	bw := bufio.NewWriter(w)
	for _, sect := range cfg.sections.items {
		writeHeader(bw, sect.Name())
		for _, opt := range sect.options.items {
			writeOption(bw, opt)
		}
	}
	return bw.Flush()
}

// WriteWithSchema serializes cfg annotated with comments derived from schm.
// Options and sections declared by the schema but missing from cfg are synthesized
// from their defaults and written after the document's own content.
func WriteWithSchema(w io.Writer, cfg *Config, schm *Schema) error {
	bw := bufio.NewWriter(w)
	for _, sect := range cfg.sections.items {
		sectSchema, _ := schm.sections.get(sect.Name())
		if sectSchema != nil {
			writeSectionAnnotation(bw, sectSchema)
		}
		writeHeader(bw, sect.Name())

		for _, opt := range sect.options.items {
			if sectSchema != nil {
				if optSchema, err := sectSchema.options.get(opt.Name()); err == nil {
					writeOptionAnnotation(bw, optSchema)
				}
			}
			writeOption(bw, opt)
		}

		if sectSchema == nil {
			continue
		}
		for _, optSchema := range sectSchema.options.items {
			if sect.Has(optSchema.Name()) {
				continue
			}
			writeOptionAnnotation(bw, optSchema)
			writeOption(bw, optSchema.newDefaultOption())
		}
	}

	for _, sectSchema := range schm.sections.items {
		if cfg.HasSection(sectSchema.Name()) {
			continue
		}
		writeSectionSchema(bw, sectSchema)
	}
	return bw.Flush()
}

// WriteSchema renders schm as an annotated INI template filled with default values.
func WriteSchema(w io.Writer, schm *Schema) error {
	bw := bufio.NewWriter(w)
	for _, sectSchema := range schm.sections.items {
		writeSectionSchema(bw, sectSchema)
	}
	return bw.Flush()
}

func writeSectionSchema(bw *bufio.Writer, sectSchema *SectionSchema) {
	writeSectionAnnotation(bw, sectSchema)
	writeHeader(bw, sectSchema.Name())
	for _, optSchema := range sectSchema.options.items {
		writeOptionAnnotation(bw, optSchema)
		writeOption(bw, optSchema.newDefaultOption())
	}
}

func writeHeader(bw *bufio.Writer, name string) {
	bw.WriteByte('[')
	bw.WriteString(name)
	bw.WriteString("]\n")
}

// writeOption writes opt as a name = value line. An option whose text is empty
// has no valid INI form and is written as a commented placeholder, so the
// output still parses and validation injects the default again.
func writeOption(bw *bufio.Writer, opt *Option) {
	text := renderOption(opt)
	if text == "" {
		bw.WriteByte(commentChar)
		bw.WriteString(opt.Name())
		bw.WriteString(" =\n")
		return
	}
	bw.WriteString(opt.Name())
	bw.WriteString(" = ")
	bw.WriteString(text)
	bw.WriteByte('\n')
}

// renderValue returns v as it must appear in INI text.
// Text kinds are escaped so the parser reads them back unchanged.
func renderValue(v Value) string {
	switch v.Kind() {
	case KindString, KindEnum:
		return Escape(v.String())
	default:
		return v.String()
	}
}

func writeComment(bw *bufio.Writer, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		bw.WriteByte(commentChar)
		bw.WriteString(strings.TrimRight(line, "\r"))
		bw.WriteByte('\n')
	}
}

func writeSectionAnnotation(bw *bufio.Writer, sectSchema *SectionSchema) {
	writeComment(bw, sectSchema.Comment())
	fmt.Fprintf(bw, ";<%s>\n", sectSchema.Requirement())
}

func writeOptionAnnotation(bw *bufio.Writer, optSchema *OptionSchema) {
	writeComment(bw, optSchema.Comment())
	fmt.Fprintf(bw, ";<%s, %s>\n", optSchema.Requirement(), optSchema.Cardinality())
	if optSchema.Default() != "" {
		fmt.Fprintf(bw, ";<default value: \"%s\">\n", optSchema.Default())
	}
}
