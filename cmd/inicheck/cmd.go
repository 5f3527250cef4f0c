// FILE: cmd/inicheck/cmd.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lixenwraith/ini"
	"github.com/spf13/cobra"
)

var errSchemaRequired = errors.New("--schema is required")

type globalFlags struct {
	schemaPath string
	verbose    bool
}

func buildCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "inicheck",
		Short:         "Validate, format and convert typed INI files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.schemaPath, "schema", "s", "", "schema descriptor (.toml, .yaml or .json)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log validation details to stderr")

	root.AddCommand(
		validateCmd(&g),
		formatCmd(&g),
		schemaCmd(&g),
		exportCmd(&g),
	)
	return root
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	if !g.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (g *globalFlags) schema() (*ini.Schema, error) {
	if g.schemaPath == "" {
		return nil, nil
	}
	return ini.LoadSchemaFile(g.schemaPath)
}

// load parses path and, when a schema is given, validates it with opts.
func (g *globalFlags) load(cmd *cobra.Command, path string, opts ini.ValidateOptions) (*ini.Config, *ini.Schema, error) {
	schm, err := g.schema()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := ini.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if schm != nil {
		opts.Logger = g.logger(cmd)
		if err := ini.ValidateWithOptions(cfg, schm, opts); err != nil {
			return nil, nil, err
		}
	}
	return cfg, schm, nil
}

func validateCmd(g *globalFlags) *cobra.Command {
	var (
		strict   bool
		explicit bool
	)
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check an INI file against a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.schemaPath == "" {
				return errSchemaRequired
			}
			opts := ini.DefaultValidateOptions()
			opts.Mode = ini.Relaxed
			if strict {
				opts.Mode = ini.Strict
			}
			if explicit {
				opts.Cardinality = ini.CardinalityExplicit
			}
			if _, _, err := g.load(cmd, args[0], opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", args[0], opts.Mode)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject sections and options missing from the schema")
	cmd.Flags().BoolVar(&explicit, "explicit-lists", false, "distinguish one-element lists from single values")
	return cmd
}

func formatCmd(g *globalFlags) *cobra.Command {
	var inPlace bool
	cmd := &cobra.Command{
		Use:   "format FILE",
		Short: "Rewrite an INI file in canonical form, annotated when a schema is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ini.DefaultValidateOptions()
			opts.Mode = ini.Relaxed
			cfg, schm, err := g.load(cmd, args[0], opts)
			if err != nil {
				return err
			}

			if inPlace {
				if schm != nil {
					return ini.SaveFileWithSchema(args[0], cfg, schm)
				}
				return ini.SaveFile(args[0], cfg)
			}
			if schm != nil {
				return ini.WriteWithSchema(cmd.OutOrStdout(), cfg, schm)
			}
			return ini.Write(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "write the result back to FILE")
	return cmd
}

func schemaCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print an annotated INI template for a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schm, err := g.schema()
			if err != nil {
				return err
			}
			if schm == nil {
				return errSchemaRequired
			}
			return ini.WriteSchema(cmd.OutOrStdout(), schm)
		},
	}
}

func exportCmd(g *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Convert an INI file to TOML, YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var export func(*ini.Config, io.Writer) error
			switch format {
			case "toml":
				export = (*ini.Config).ExportTOML
			case "yaml", "yml":
				export = (*ini.Config).ExportYAML
			case "json":
				export = (*ini.Config).ExportJSON
			default:
				return fmt.Errorf("unsupported export format %q", format)
			}

			opts := ini.DefaultValidateOptions()
			opts.Mode = ini.Relaxed
			cfg, _, err := g.load(cmd, args[0], opts)
			if err != nil {
				return err
			}
			return export(cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: toml, yaml or json")
	return cmd
}

