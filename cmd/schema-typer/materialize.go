package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"schema-typer/internal/caster"
	"schema-typer/internal/object"
)

func newMaterializeCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "materialize SCHEMA DATA",
		Short: "Coerce a JSON or XML document into an instance of the schema's root type",
		Long: `Coerce a JSON or XML document into an instance of the schema's root type.

DATA files ending in .xml are read element by element; anything else is
decoded as JSON, populated into the schema's default object and coerced
field by field. Unmatched input is reported with suggestions at info level.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.synthesize(cmd, args[0])
			if err != nil {
				return err
			}

			inst, err := a.materialize(cmd, c, args[1])
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), inst)

				return nil
			}

			return writeJSON(cmd.OutOrStdout(), inst)
		},
	}

	flags := cmd.Flags()
	flags.String("name", "Root", "name of the root type of JSON and YAML schemas")
	flags.BoolVar(&dump, "dump", false, "dump the instance with its Go values instead of JSON")

	return cmd
}

func (a *app) materialize(cmd *cobra.Command, c *compiled, dataPath string) (*caster.Instance, error) {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}

	engine := a.engine(c.reg)

	var inst *caster.Instance

	if isXML(dataPath) {
		el, err := caster.ParseXML(data)
		if err != nil {
			return nil, err
		}

		inst, err = engine.FromXML(el, c.def)
		if err != nil {
			return nil, err
		}
	} else {
		opts := []object.Option{
			object.WithLogger(a.logger),
			object.WithMaxDepth(a.cfg.MaxDepth),
		}

		obj, err := object.Build(c.root, opts...)
		if err != nil {
			return nil, err
		}

		diags, err := object.PopulateJSON(obj, data, opts...)
		diags.Log(cmd.Context(), a.logger)

		if err != nil {
			return nil, fmt.Errorf("failed to populate from %s: %w", dataPath, err)
		}

		inst, err = engine.FromObject(obj, c.def)
		if err != nil {
			return nil, err
		}
	}

	diags := engine.Diagnostics()
	diags.Log(cmd.Context(), a.logger)

	return inst, nil
}
