// File: lixenwraith/ini/parser.go
package ini

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// maxLineLength bounds a single physical line.
	maxLineLength = 1 << 20

	linkOpen  = "${"
	linkClose = '}'
)

// utf8BOM is skipped when it starts the input.
const utf8BOM = "\uFEFF"

// Parse reads INI text from r into an untyped document where every value is a string.
// The first malformed line aborts the parse with a *SyntaxError.
func Parse(r io.Reader) (*Config, error) {
	p := &parser{cfg: New()}
	if err := p.run(r); err != nil {
		return nil, err
	}
	return p.cfg, nil
}

// ParseString parses INI text held in memory.
func ParseString(text string) (*Config, error) {
	return Parse(strings.NewReader(text))
}

// ParseWithSchema parses r and validates the result against schm in the given mode.
func ParseWithSchema(r io.Reader, schm *Schema, mode Mode) (*Config, error) {
	cfg, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg, schm, mode); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parser holds the single-pass state: the document under construction, the open
// section and the current line number.
type parser struct {
	cfg     *Config
	current *Section
	line    int
}

func (p *parser) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		p.line++
		text := scanner.Text()
		if p.line == 1 {
			text = strings.TrimPrefix(text, utf8BOM)
		}
		if err := p.parseLine(text); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return syntaxErrorf(p.line+1, "line exceeds %d bytes", maxLineLength)
		}
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (p *parser) parseLine(text string) error {
	line := trimEscaped(stripComment(text))
	switch {
	case line == "":
		return nil
	case line[0] == '[':
		return p.parseSection(line)
	default:
		return p.parseOption(line)
	}
}

func (p *parser) parseSection(line string) error {
	if len(line) < 2 || line[len(line)-1] != ']' || endsWithEscape(line[:len(line)-1]) {
		return syntaxErrorf(p.line, "unterminated section header %q", line)
	}
	name := Unescape(trimEscaped(line[1 : len(line)-1]))
	if name == "" {
		return syntaxErrorf(p.line, "empty section name")
	}
	if !IsValidIdentifier(name) {
		return syntaxErrorf(p.line, "invalid section name %q", name)
	}

	sect := NewSection(name)
	if err := p.cfg.AddSection(sect); err != nil {
		return &SyntaxError{Line: p.line, Message: fmt.Sprintf("section %q declared twice", name), Err: ErrDuplicateName}
	}
	p.current = sect
	return nil
}

func (p *parser) parseOption(line string) error {
	if p.current == nil {
		return syntaxErrorf(p.line, "option outside of any section")
	}
	eq := findNonEscaped(line, assignChar)
	if eq < 0 {
		return syntaxErrorf(p.line, "missing %q in option line", string(assignChar))
	}

	name := Unescape(trimEscaped(line[:eq]))
	if name == "" {
		return syntaxErrorf(p.line, "empty option name")
	}
	if !IsValidIdentifier(name) {
		return syntaxErrorf(p.line, "invalid option name %q", name)
	}
	raw := trimEscaped(line[eq+1:])
	if raw == "" {
		return syntaxErrorf(p.line, "empty value for option %q", name)
	}

	items := splitRawList(raw)
	for i, item := range items {
		resolved, err := p.resolveLinks(item)
		if err != nil {
			return err
		}
		items[i] = resolved
	}

	if err := p.current.Add(NewOption(name, items...)); err != nil {
		return &SyntaxError{
			Line:    p.line,
			Message: fmt.Sprintf("option %q declared twice in section %q", name, p.current.Name()),
			Err:     ErrDuplicateName,
		}
	}
	return nil
}

// resolveLinks substitutes every ${section#option} token in the still escaped
// item with the text of the referenced option and unescapes the rest. An escaped
// '$' never opens a link. Only the open section and sections above it are visible.
func (p *parser) resolveLinks(item string) (string, error) {
	var b strings.Builder
	rest := item
	for {
		start := findLinkOpen(rest)
		if start < 0 {
			b.WriteString(Unescape(rest))
			return b.String(), nil
		}
		end := findNonEscaped(rest[start:], linkClose)
		if end < 0 {
			return "", syntaxErrorf(p.line, "unterminated link in %q", Unescape(item))
		}
		end += start

		target, err := p.lookupLink(Unescape(rest[start+len(linkOpen) : end]))
		if err != nil {
			return "", err
		}
		b.WriteString(Unescape(rest[:start]))
		b.WriteString(target)
		rest = rest[end+1:]
	}
}

func (p *parser) lookupLink(ref string) (string, error) {
	sectName, optName, ok := strings.Cut(ref, string(linkSeparator))
	if !ok {
		return "", syntaxErrorf(p.line, "link %q has no %q separator", ref, string(linkSeparator))
	}
	if sectName == "" || optName == "" {
		return "", syntaxErrorf(p.line, "link %q has an empty part", ref)
	}

	sect, err := p.cfg.sections.get(sectName)
	if err != nil {
		return "", &SyntaxError{Line: p.line, Message: fmt.Sprintf("link %q: unknown section %q", ref, sectName), Err: ErrNotFound}
	}
	opt, err := sect.options.get(optName)
	if err != nil {
		return "", &SyntaxError{Line: p.line, Message: fmt.Sprintf("link %q: unknown option %q", ref, optName), Err: ErrNotFound}
	}
	return opt.Value().String(), nil
}
