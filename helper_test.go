// FILE: lixenwraith/ini/helper_test.go
package ini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidIdentifier tests the section and option name grammar
func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"Section 1", "section2::a", "$var", ".hidden", ":x", "opt-name_2~v.1", "a"}
	for _, name := range valid {
		assert.True(t, IsValidIdentifier(name), name)
	}

	invalid := []string{"", "1abc", "-lead", "a=b", "a;b", "a,b", "ü", "tab\there", " lead"}
	for _, name := range invalid {
		assert.False(t, IsValidIdentifier(name), name)
	}
}

// TestEscape tests escaping of special characters and boundary whitespace
func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a b", "a b"},
		{"a,b", `a\,b`},
		{"a:b", `a\:b`},
		{"k=v", `k\=v`},
		{"x;y", `x\;y`},
		{"${s#o}", `\${s#o}`},
		{`back\slash`, `back\\slash`},
		{" lead", `\ lead`},
		{"trail ", `trail\ `},
		{" ", `\ `},
		{"\tü\t", "\\\tü\\\t"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), tt.in)
	}
}

// TestEscapeRoundTrip tests that unescape inverts escape
func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"", " ", "  ", `\`, `a\`, `\\`, ",", ":;=", " both ", "ünïcödé ", "mid dle",
		`trailing backslash and space\ `, "${s#o}", "\x00bin",
	}
	for _, s := range inputs {
		assert.Equal(t, s, Unescape(Escape(s)), "%q", s)
	}
}

// TestUnescape tests removal of escape markers
func TestUnescape(t *testing.T) {
	assert.Equal(t, "a,b", Unescape(`a\,b`))
	assert.Equal(t, `a\b`, Unescape(`a\\b`))
	assert.Equal(t, "ab", Unescape(`\a\b`))
	assert.Equal(t, `end\`, Unescape(`end\`))
	assert.Equal(t, "none", Unescape("none"))
}

// TestSplitList tests delimiter inference, trimming and unescaping of list items
func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"single", []string{"single"}},
		{"5, 25,856", []string{"5", "25", "856"}},
		{"a:b:c", []string{"a", "b", "c"}},
		{"a:b,c", []string{"a:b", "c"}},
		{`a\,b,c`, []string{"a,b", "c"}},
		{`a\:b`, []string{"a:b"}},
		{`x\ , y`, []string{"x ", "y"}},
		{`\ x`, []string{" x"}},
		{"a,,b", []string{"a", "", "b"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitList(tt.in), tt.in)
	}
}

// TestStripComment tests comment removal at the first non-escaped ';'
func TestStripComment(t *testing.T) {
	assert.Equal(t, "a = b ", stripComment("a = b ; c"))
	assert.Equal(t, `a\;b`, stripComment(`a\;b;c`))
	assert.Equal(t, "", stripComment("; whole line"))
	assert.Equal(t, "none", stripComment("none"))
}

// TestTrimEscaped tests that escaped trailing whitespace survives trimming
func TestTrimEscaped(t *testing.T) {
	assert.Equal(t, "v", trimEscaped("  v  "))
	assert.Equal(t, `v\ `, trimEscaped(`  v\   `))
	assert.Equal(t, `v\\`, trimEscaped(`v\\  `))
	assert.Equal(t, "", trimEscaped("   "))
}
