package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"schema-typer/internal/object"
)

func newObjectCmd(a *app) *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "object SCHEMA",
		Short: "Build the default object of a schema, optionally populated from a JSON document",
		Long: `Build the default object of a schema: one field per schema property,
named after the normalized property name and holding its zero value.

With --data the object is populated from a JSON document. Document keys are
set as written and never renamed, so a key like "name" appears next to the
schema field "Name" rather than replacing it. Use materialize to map document
keys onto schema fields.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.loadSchema(cmd, args[0])
			if err != nil {
				return err
			}

			opts := []object.Option{
				object.WithLogger(a.logger),
				object.WithMaxDepth(a.cfg.MaxDepth),
			}

			obj, err := object.Build(root, opts...)
			if err != nil {
				return err
			}

			if dataPath != "" {
				data, err := os.ReadFile(dataPath)
				if err != nil {
					return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
				}

				diags, err := object.PopulateJSON(obj, data, opts...)
				diags.Log(cmd.Context(), a.logger)

				if err != nil {
					return fmt.Errorf("failed to populate from %s: %w", dataPath, err)
				}
			}

			return writeJSON(cmd.OutOrStdout(), obj)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "JSON document to populate the object from")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
