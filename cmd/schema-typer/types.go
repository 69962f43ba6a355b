package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"schema-typer/internal/gen"
	"schema-typer/internal/synth"
)

func newTypesCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "types SCHEMA",
		Short: "Print the types synthesized from a schema",
		Long: `Print the types synthesized from a schema file (.json, .yaml, .yml or .xsd).

Formats:
  text  one block per type definition
  yaml  the registry as a YAML document
  go    Go source declaring one struct per definition`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watch(cmd, args[0], func() error {
					return a.printTypes(cmd, args[0])
				})
			}

			return a.printTypes(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("name", "Root", "name of the root type of JSON and YAML schemas")
	flags.String("format", "text", "output format: text, yaml or go")
	flags.String("package", "model", "package name of generated Go source")
	flags.String("out", "", "write generated Go source into this directory")
	flags.BoolVar(&watch, "watch", false, "print again whenever the schema file changes")

	return cmd
}

func (a *app) printTypes(cmd *cobra.Command, path string) error {
	c, err := a.synthesize(cmd, path)
	if err != nil {
		return err
	}

	reg := c.reg

	out := cmd.OutOrStdout()

	switch a.cfg.Output.Format {
	case "yaml":
		return writeYAML(out, reg)
	case "go":
		return a.writeGo(out, reg)
	default:
		return writeText(out, reg)
	}
}

func writeText(w io.Writer, reg *synth.Registry) error {
	for i, def := range reg.Definitions() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w, def.String()); err != nil {
			return err
		}
	}

	return nil
}

type yamlField struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Attribute bool   `yaml:"attribute,omitempty"`
}

type yamlDefinition struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

func writeYAML(w io.Writer, reg *synth.Registry) error {
	defs := lo.Map(reg.Definitions(), func(def *synth.TypeDefinition, _ int) yamlDefinition {
		return yamlDefinition{
			Name: def.Name,
			Fields: lo.Map(def.Fields, func(f synth.Field, _ int) yamlField {
				return yamlField{Name: f.Name, Type: f.Type.String(), Attribute: f.Attribute}
			}),
		}
	})

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(map[string][]yamlDefinition{"types": defs}); err != nil {
		return fmt.Errorf("failed to encode types: %w", err)
	}

	return enc.Close()
}

func (a *app) writeGo(w io.Writer, reg *synth.Registry) error {
	generator := gen.NewGenerator(gen.GeneratorConfig{
		PackageName:      a.cfg.Output.Package,
		OutputDir:        a.cfg.Output.Dir,
		GenerateComments: true,
	})

	file, err := generator.GenerateFile(a.cfg.Output.Package, reg)
	if err != nil {
		return err
	}

	if a.cfg.Output.Dir == "" {
		_, err = w.Write(file.Content)

		return err
	}

	if err := gen.WriteFiles([]gen.GeneratedFile{*file}, a.cfg.Output.Dir); err != nil {
		return err
	}

	a.logger.Info("types written",
		slog.String("dir", a.cfg.Output.Dir),
		slog.String("file", file.Filename),
	)

	return nil
}
