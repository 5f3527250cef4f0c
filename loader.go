// FILE: lixenwraith/ini/loader.go
package ini

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Source represents a configuration source, used to define load precedence
type Source string

const (
	// SourceFile represents values parsed from an INI file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI Source = "cli"
)

// MaxValueSize bounds a single override value taken from the environment or command line.
const MaxValueSize = 64 << 10

// EnvTransformFunc converts a section and option name to an environment variable name
type EnvTransformFunc func(section, option string) string

// LoadOptions configures how a document is assembled from multiple sources
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceEnv, SourceFile]
	Sources []Source

	// EnvPrefix is prepended to environment variable names
	// Example: "MYAPP_" transforms section "server", option "port" to "MYAPP_SERVER_PORT"
	EnvPrefix string

	// EnvTransform customizes how options map to environment variables
	// If nil, uses default transformation (non-alphanumerics to underscores, uppercase)
	EnvTransform EnvTransformFunc

	// EnvWhitelist limits which "section#option" paths are checked for env vars (nil = all)
	EnvWhitelist map[string]bool

	// MaxFileSize bounds the configuration file size in bytes (0 = unlimited)
	MaxFileSize int64

	// Schema, if set, declares overridable options absent from the file and
	// validates the assembled document.
	Schema *Schema

	// Validation configures the final validation pass when Schema is set.
	Validation ValidateOptions

	// Logger receives debug records about sources and overrides. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources:     []Source{SourceCLI, SourceEnv, SourceFile},
		MaxFileSize: DefaultMaxFileSize,
		Validation:  DefaultValidateOptions(),
	}
}

// Load reads the INI file at filePath and applies environment and command-line
// overrides using DefaultLoadOptions.
func Load(filePath string, args []string) (*Config, error) {
	return LoadWithOptions(filePath, args, DefaultLoadOptions())
}

// LoadWithOptions assembles a document from multiple sources.
// A missing file is not fatal: the returned document is usable and the error
// wraps ErrConfigNotFound.
func LoadWithOptions(filePath string, args []string, opts LoadOptions) (*Config, error) {
	var base baseSource
	if filePath != "" {
		base = baseSource{
			name: filePath,
			load: func() (*Config, error) { return loadFile(filePath, opts.MaxFileSize) },
		}
	}
	return assemble(base, args, opts)
}

// LoadReaderWithOptions is like LoadWithOptions with the file source read from r.
func LoadReaderWithOptions(r io.Reader, args []string, opts LoadOptions) (*Config, error) {
	return assemble(baseSource{
		name: "reader",
		load: func() (*Config, error) { return Parse(r) },
	}, args, opts)
}

// baseSource produces the document for the SourceFile layer.
type baseSource struct {
	name string
	load func() (*Config, error)
}

func assemble(base baseSource, args []string, opts LoadOptions) (*Config, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg := New()
	var loadErrors []error

	// Process each source according to precedence (in reverse order for proper layering)
	for i := len(opts.Sources) - 1; i >= 0; i-- {
		switch opts.Sources[i] {
		case SourceFile:
			if base.load == nil {
				continue
			}
			fileCfg, err := base.load()
			if err != nil {
				if errors.Is(err, ErrConfigNotFound) {
					logger.Debug("config file not found", "source", base.name)
					loadErrors = append(loadErrors, err)
					continue
				}
				return nil, err // Fatal error
			}
			cfg.overlay(fileCfg)
			logger.Debug("loaded config", "source", base.name, "sections", fileCfg.Len())

		case SourceEnv:
			applied, err := cfg.loadEnv(opts)
			if err != nil {
				loadErrors = append(loadErrors, err)
			}
			if applied > 0 {
				logger.Debug("applied environment overrides", "count", applied)
			}

		case SourceCLI:
			if len(args) == 0 {
				continue
			}
			applied, err := cfg.loadCLI(args, opts.Schema)
			if err != nil {
				return nil, err
			}
			if applied > 0 {
				logger.Debug("applied command-line overrides", "count", applied)
			}
		}
	}

	if opts.Schema != nil {
		vopts := opts.Validation
		if vopts.Logger == nil {
			vopts.Logger = opts.Logger
		}
		if err := ValidateWithOptions(cfg, opts.Schema, vopts); err != nil {
			return nil, err
		}
	}

	return cfg, errors.Join(loadErrors...)
}

// loadFile reads and parses an INI configuration file
func loadFile(path string, maxSize int64) (*Config, error) {
	data, err := readFile(path, maxSize)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return cfg, nil
}

// overlay copies every option of src into c, replacing options that already exist.
func (c *Config) overlay(src *Config) {
	for _, srcSect := range src.sections.items {
		for _, opt := range srcSect.options.items {
			c.setOverride(srcSect.Name(), opt.Clone())
		}
		if !c.HasSection(srcSect.Name()) {
			// keep empty sections too
			_ = c.AddSection(NewSection(srcSect.Name()))
		}
	}
}

// setOverride replaces or creates the option, creating its section if needed.
func (c *Config) setOverride(section string, opt *Option) {
	sect, err := c.sections.get(section)
	if err != nil {
		sect = NewSection(section)
		_ = c.AddSection(sect)
	}
	if existing, err := sect.options.get(opt.Name()); err == nil {
		existing.values = opt.values
		existing.list = opt.list
		return
	}
	_ = sect.Add(opt)
}

// OptionPath joins a section and option name into the "section#option" form
// used by link tokens, env whitelists and command-line overrides.
func OptionPath(section, option string) string {
	return section + string(linkSeparator) + option
}

// splitOptionPath is the inverse of OptionPath. The last separator wins.
func splitOptionPath(path string) (section, option string, ok bool) {
	i := strings.LastIndexByte(path, linkSeparator)
	if i <= 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}

type optionRef struct {
	section, option string
}

// knownOptions lists every option in the document followed by options declared
// only in schm.
func (c *Config) knownOptions(schm *Schema) []optionRef {
	var refs []optionRef
	seen := make(map[string]bool)
	for _, sect := range c.sections.items {
		for _, opt := range sect.options.items {
			refs = append(refs, optionRef{sect.Name(), opt.Name()})
			seen[OptionPath(sect.Name(), opt.Name())] = true
		}
	}
	if schm == nil {
		return refs
	}
	for _, sectSchema := range schm.sections.items {
		for _, optSchema := range sectSchema.options.items {
			if !seen[OptionPath(sectSchema.Name(), optSchema.Name())] {
				refs = append(refs, optionRef{sectSchema.Name(), optSchema.Name()})
			}
		}
	}
	return refs
}

// loadEnv applies environment overrides to known options and returns how many were applied
func (c *Config) loadEnv(opts LoadOptions) (int, error) {
	transform := opts.EnvTransform
	if transform == nil {
		transform = defaultEnvTransform(opts.EnvPrefix)
	}

	applied := 0
	for _, ref := range c.knownOptions(opts.Schema) {
		if opts.EnvWhitelist != nil && !opts.EnvWhitelist[OptionPath(ref.section, ref.option)] {
			continue
		}

		envVar := transform(ref.section, ref.option)
		value, exists := os.LookupEnv(envVar)
		if !exists {
			continue
		}
		if len(value) > MaxValueSize {
			return applied, fmt.Errorf("environment variable %s exceeds %d bytes", envVar, MaxValueSize)
		}
		c.setOverride(ref.section, NewOption(ref.option, SplitList(unquote(value))...))
		applied++
	}
	return applied, nil
}

// loadCLI applies "--section#option=value" overrides to known options
func (c *Config) loadCLI(args []string, schm *Schema) (int, error) {
	overrides, err := parseArgs(args)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	known := make(map[string]bool)
	for _, ref := range c.knownOptions(schm) {
		known[OptionPath(ref.section, ref.option)] = true
	}

	applied := 0
	for _, o := range overrides {
		path := OptionPath(o.section, o.option)
		if !known[path] {
			// Ignore options neither in the document nor in the schema
			continue
		}
		c.setOverride(o.section, NewOption(o.option, SplitList(unquote(o.value))...))
		applied++
	}
	return applied, nil
}

// DiscoverEnv returns the environment variables that would override options
// of the document or schm, keyed by "section#option" path.
func (c *Config) DiscoverEnv(schm *Schema, prefix string) map[string]string {
	transform := defaultEnvTransform(prefix)
	discovered := make(map[string]string)
	for _, ref := range c.knownOptions(schm) {
		envVar := transform(ref.section, ref.option)
		if _, exists := os.LookupEnv(envVar); exists {
			discovered[OptionPath(ref.section, ref.option)] = envVar
		}
	}
	return discovered
}

// ExportEnv renders every option as an environment variable assignment
func (c *Config) ExportEnv(prefix string) map[string]string {
	transform := defaultEnvTransform(prefix)
	exports := make(map[string]string)
	for _, sect := range c.sections.items {
		for _, opt := range sect.options.items {
			exports[transform(sect.Name(), opt.Name())] = renderOption(opt)
		}
	}
	return exports
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(section, option string) string {
		return prefix + envSegment(section) + "_" + envSegment(option)
	}
}

// envSegment uppercases name and maps every non-alphanumeric byte to '_'.
func envSegment(name string) string {
	b := []byte(strings.ToUpper(name))
	for i, ch := range b {
		if !(ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9') {
			b[i] = '_'
		}
	}
	return string(b)
}

// unquote removes one pair of surrounding double quotes
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

type cliOverride struct {
	section, option, value string
}

// parseArgs collects "--section#option=value" and "--section#option value" overrides.
// A flag without a value is a boolean switch set to "yes".
func parseArgs(args []string) ([]cliOverride, error) {
	var result []cliOverride
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// Skip "--" argument if used as a separator
			i++
			continue
		}

		var keyPath, valueStr string
		if key, value, found := strings.Cut(argContent, "="); found {
			keyPath, valueStr = key, value
			i++
		} else {
			keyPath = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "yes"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		section, option, ok := splitOptionPath(keyPath)
		if !ok {
			// Not an option override, e.g. --config
			continue
		}
		if !IsValidIdentifier(section) || !IsValidIdentifier(option) {
			return nil, fmt.Errorf("invalid command-line option path %q", keyPath)
		}
		if len(valueStr) > MaxValueSize {
			return nil, fmt.Errorf("command-line value for %q exceeds %d bytes", keyPath, MaxValueSize)
		}
		result = append(result, cliOverride{section, option, valueStr})
	}
	return result, nil
}
