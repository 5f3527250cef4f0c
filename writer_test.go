// FILE: lixenwraith/ini/writer_test.go
package ini

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWritePlain tests plain serialization
func TestWritePlain(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, New()))
		assert.Equal(t, "", buf.String())
	})

	t.Run("TypedValues", func(t *testing.T) {
		cfg := New()
		sect, err := cfg.NewSection("s")
		require.NoError(t, err)
		require.NoError(t, sect.Add(NewValueOption("on", BoolValue(true))))
		require.NoError(t, sect.Add(NewValueOption("off", BoolValue(false))))
		list, err := NewListOption("nums", []Value{SignedValue(-1), SignedValue(2)})
		require.NoError(t, err)
		require.NoError(t, sect.Add(list))
		require.NoError(t, sect.Add(NewValueOption("text", StringValue(" a;b,c "))))
		_, err = cfg.NewSection("empty")
		require.NoError(t, err)

		want := "[s]\non = yes\noff = no\nnums = -1,2\ntext = \\ a\\;b\\,c\\ \n[empty]\n"
		assert.Equal(t, want, cfg.String())
	})
}

// TestWriteRoundTrip tests that parse(write(doc)) reproduces the document
func TestWriteRoundTrip(t *testing.T) {
	input := "[a]\nx = 1\nlist = p, q\\,r, \\ s\\ \n[b]\ny = ${a#x}\nz = semi\\;colon\n"
	cfg, err := ParseString(input)
	require.NoError(t, err)

	again, err := ParseString(cfg.String())
	require.NoError(t, err)
	assert.True(t, cfg.Equal(again), cfg.String())
}

// TestWriteEmptyValue tests that an empty text value is written as a placeholder
// that parses and validates back to the same document
func TestWriteEmptyValue(t *testing.T) {
	schm := NewSchema()
	require.NoError(t, schm.AddSection(NewSectionSchema(SectionSchemaParams{Name: "app"})))
	require.NoError(t, schm.AddOption("app", NewOptionSchema(OptionSchemaParams[uint64]{Name: "port"})))
	require.NoError(t, schm.AddOption("app", NewOptionSchema(OptionSchemaParams[string]{
		Name:        "motd",
		Requirement: Optional,
	})))

	cfg, err := ParseString("[app]\nport = 80\n")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate(schm, Strict))
	motd, err := cfg.Option("app", "motd")
	require.NoError(t, err)
	assert.Equal(t, "", motd.String())

	t.Run("Plain", func(t *testing.T) {
		out := cfg.String()
		assert.Equal(t, "[app]\nport = 80\n;motd =\n", out)

		again, err := ParseString(out)
		require.NoError(t, err)
		require.NoError(t, again.Validate(schm, Strict))
		assert.True(t, cfg.Equal(again), out)
		assert.Equal(t, out, again.String())
	})

	t.Run("Annotated", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWithSchema(&buf, cfg, schm))
		assert.Contains(t, buf.String(), ";<optional, single>\n;motd =\n")

		again, err := ParseWithSchema(strings.NewReader(buf.String()), schm, Strict)
		require.NoError(t, err)
		assert.True(t, cfg.Equal(again), buf.String())
	})

	t.Run("ListOfEmptyItems", func(t *testing.T) {
		doc := New()
		sect, err := doc.NewSection("s")
		require.NoError(t, err)
		_, err = sect.AddValues("pair", "", "")
		require.NoError(t, err)

		again, err := ParseString(doc.String())
		require.NoError(t, err)
		assert.True(t, doc.Equal(again), doc.String())
	})
}

// TestWriteLiteralLinkText tests that text shaped like a link survives a round trip
func TestWriteLiteralLinkText(t *testing.T) {
	cfg := New()
	sect, err := cfg.NewSection("A")
	require.NoError(t, err)
	_, err = sect.AddValues("x", "1")
	require.NoError(t, err)
	_, err = sect.AddValues("y", "${A#x}")
	require.NoError(t, err)
	_, err = sect.AddValues("z", "cost $5", "${")
	require.NoError(t, err)

	out := cfg.String()
	assert.Contains(t, out, "y = \\${A#x}\n")

	again, err := ParseString(out)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(again), out)
	assert.Equal(t, []string{"${A#x}"}, optionText(t, again, "A", "y"))
}

// TestWriteWithSchema tests annotated serialization
func TestWriteWithSchema(t *testing.T) {
	schm := NewSchema()
	require.NoError(t, schm.AddSection(NewSectionSchema(SectionSchemaParams{Name: "section_name", Comment: "comment"})))
	require.NoError(t, schm.AddOption("section_name", NewOptionSchema(OptionSchemaParams[string]{
		Name:    "opt",
		Default: "default value",
		Comment: "opt comment",
	})))
	require.NoError(t, schm.AddOption("section_name", NewOptionSchema(OptionSchemaParams[uint64]{
		Name:        "unsigned",
		Requirement: Optional,
		Default:     "42",
		Comment:     "unsigned comment",
	})))

	t.Run("DocumentOptions", func(t *testing.T) {
		cfg := New()
		sect, err := cfg.NewSection("section_name")
		require.NoError(t, err)
		require.NoError(t, sect.Add(NewOption("opt", "value")))
		require.NoError(t, sect.Add(NewValueOption("unsigned", UnsignedValue(42))))

		var buf bytes.Buffer
		require.NoError(t, WriteWithSchema(&buf, cfg, schm))
		want := ";comment\n" +
			";<mandatory>\n" +
			"[section_name]\n" +
			";opt comment\n" +
			";<mandatory, single>\n" +
			";<default value: \"default value\">\n" +
			"opt = value\n" +
			";unsigned comment\n" +
			";<optional, single>\n" +
			";<default value: \"42\">\n" +
			"unsigned = 42\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("SynthesizedAndUndeclared", func(t *testing.T) {
		cfg, err := ParseString("[section_name]\nextra = e\nopt = v\n[other]\nk = 1\n")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteWithSchema(&buf, cfg, schm))
		want := ";comment\n" +
			";<mandatory>\n" +
			"[section_name]\n" +
			"extra = e\n" +
			";opt comment\n" +
			";<mandatory, single>\n" +
			";<default value: \"default value\">\n" +
			"opt = v\n" +
			";unsigned comment\n" +
			";<optional, single>\n" +
			";<default value: \"42\">\n" +
			"unsigned = 42\n" +
			"[other]\n" +
			"k = 1\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("MissingSection", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteWithSchema(&buf, New(), schm))
		assert.Equal(t, schm.String(), buf.String())
	})
}

// TestWriteSchema tests the schema template output
func TestWriteSchema(t *testing.T) {
	schm := NewSchema()
	require.NoError(t, schm.AddSection(NewSectionSchema(SectionSchemaParams{
		Name:        "s",
		Requirement: Optional,
		Comment:     "first line\nsecond line",
	})))
	require.NoError(t, schm.AddOption("s", NewOptionSchema(OptionSchemaParams[string]{
		Name:        "opt_name",
		Requirement: Optional,
		Cardinality: List,
		Default:     "default,value",
	})))
	require.NoError(t, schm.AddOption("s", NewOptionSchema(OptionSchemaParams[bool]{
		Name: "flag",
	})))

	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, schm))
	want := ";first line\n" +
		";second line\n" +
		";<optional>\n" +
		"[s]\n" +
		";<optional, list>\n" +
		";<default value: \"default,value\">\n" +
		"opt_name = default,value\n" +
		";<mandatory, single>\n" +
		";flag =\n"
	assert.Equal(t, want, buf.String())

	// the template parses, and validates once the placeholder is filled in
	_, err := ParseString(buf.String())
	require.NoError(t, err)
	tmpl := strings.Replace(buf.String(), ";flag =\n", "flag = no\n", 1)
	cfg, err := ParseWithSchema(strings.NewReader(tmpl), schm, Strict)
	require.NoError(t, err)
	opt, err := cfg.Option("s", "opt_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "value"}, opt.StringList())
}
