// File: lixenwraith/ini/helper.go
package ini

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// escapeChar escapes the immediately following character.
	escapeChar = '\\'
	// commentChar starts a comment running to end of line.
	commentChar = ';'
	// assignChar separates an option name from its value.
	assignChar = '='
	// listDelimiter is the preferred list delimiter, also used when writing.
	listDelimiter = ','
	// altListDelimiter is used when a value holds no non-escaped listDelimiter.
	altListDelimiter = ':'
	// linkSeparator separates the section and option parts of a link.
	linkSeparator = '#'
)

// specialChars are always escaped by Escape. '$' is included so a literal
// "${" is never read back as a link.
const specialChars = `\;,:=$`

// identifierPattern is the grammar shared by section and option names.
var identifierPattern = regexp.MustCompile(`^[A-Za-z.$:][-A-Za-z0-9_~.: ]*$`)

// IsValidIdentifier reports whether name is a legal section or option name.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Escape makes s safe to write as an option value: every special character and
// leading/trailing whitespace is prefixed with a backslash.
// Unescape(Escape(s)) == s for every s.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case strings.IndexByte(specialChars, s[i]) >= 0:
			b.WriteByte(escapeChar)
		case unicode.IsSpace(r) && (i == 0 || i+size == len(s)):
			b.WriteByte(escapeChar)
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// Unescape removes escape markers, keeping each escaped character literally.
// A trailing lone backslash is kept.
func Unescape(s string) string {
	if strings.IndexByte(s, escapeChar) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChar && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// findNonEscaped returns the index of the first ch in s that is not escaped, or -1.
func findNonEscaped(s string, ch byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChar:
			i++
		case ch:
			return i
		}
	}
	return -1
}

// splitNonEscaped splits s at every non-escaped sep. Escape markers are kept in the parts.
func splitNonEscaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChar:
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// endsWithEscape reports whether s ends with a backslash that escapes nothing yet,
// i.e. an odd run of trailing backslashes.
func endsWithEscape(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == escapeChar; i-- {
		n++
	}
	return n%2 == 1
}

// trimEscaped trims surrounding whitespace, keeping one trailing whitespace
// character when it was escaped. Leading escaped whitespace survives on its own
// because the backslash precedes it.
func trimEscaped(s string) string {
	left := strings.TrimLeftFunc(s, unicode.IsSpace)
	trimmed := strings.TrimRightFunc(left, unicode.IsSpace)
	if rest := left[len(trimmed):]; rest != "" && endsWithEscape(trimmed) {
		_, size := utf8.DecodeRuneInString(rest)
		trimmed += rest[:size]
	}
	return trimmed
}

// stripComment drops everything from the first non-escaped comment character.
func stripComment(line string) string {
	if i := findNonEscaped(line, commentChar); i >= 0 {
		return line[:i]
	}
	return line
}

// listDelimiterFor infers the delimiter of a raw value: ',' when present unescaped, ':' otherwise.
func listDelimiterFor(raw string) byte {
	if findNonEscaped(raw, listDelimiter) >= 0 {
		return listDelimiter
	}
	return altListDelimiter
}

// SplitList splits a raw (still escaped) option value into unescaped items using
// the same delimiter inference, trimming and unescaping rules as the parser.
// Links are not resolved.
func SplitList(raw string) []string {
	items := splitRawList(raw)
	for i, item := range items {
		items[i] = Unescape(item)
	}
	return items
}

// splitRawList splits and trims raw into items that keep their escape markers.
func splitRawList(raw string) []string {
	parts := splitNonEscaped(raw, listDelimiterFor(raw))
	for i, part := range parts {
		parts[i] = trimEscaped(part)
	}
	return parts
}

// findLinkOpen returns the index of the first "${" in s whose '$' is not escaped, or -1.
func findLinkOpen(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escapeChar:
			i++
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				return i
			}
		}
	}
	return -1
}
