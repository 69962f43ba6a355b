package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-typer/internal/caster"
	"schema-typer/internal/config"
	"schema-typer/internal/loader"
	"schema-typer/internal/match"
	"schema-typer/internal/schema"
	"schema-typer/internal/synth"
)

// flagKeys binds command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level": config.KeyLogLevel,
	"max-depth": config.KeyMaxDepth,
	"name":      config.KeyRootName,
	"format":    config.KeyOutputFormat,
	"package":   config.KeyOutputPackage,
	"out":       config.KeyOutputDir,
}

// app is the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "schema-typer",
		Short:         "Synthesize runtime types from JSON Schema, YAML and XSD documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (YAML)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Int("max-depth", synth.DefaultMaxDepth, "maximum schema and document nesting depth")

	root.AddCommand(
		newTypesCmd(a),
		newObjectCmd(a),
		newMaterializeCmd(a),
		newConfigCmd(a),
	)

	return root
}

// load binds the flags of the executing command and reads the configuration.
func (a *app) load(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}

		if err := a.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.LoadViper(a.v, a.configPath)
	if err != nil {
		return err
	}

	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// loadSchema normalizes the schema file at path and logs the loader findings.
func (a *app) loadSchema(cmd *cobra.Command, path string) (*schema.Element, error) {
	l := loader.New(
		loader.WithLogger(a.logger),
		loader.WithRootName(a.cfg.RootName),
	)

	root, err := l.LoadFile(path)

	diags := l.Diagnostics()
	diags.Log(cmd.Context(), a.logger)

	if err != nil {
		return nil, err
	}

	return root, nil
}

// compiled is a schema with its types synthesized.
type compiled struct {
	root *schema.Element
	reg  *synth.Registry
	def  *synth.TypeDefinition
}

// synthesize loads the schema at path into a frozen registry.
func (a *app) synthesize(cmd *cobra.Command, path string) (*compiled, error) {
	root, err := a.loadSchema(cmd, path)
	if err != nil {
		return nil, err
	}

	reg := synth.NewRegistry()
	s := synth.New(
		synth.WithLogger(a.logger),
		synth.WithMaxDepth(a.cfg.MaxDepth),
	)

	def, err := s.Synthesize(root, typeName(root), reg)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize %s: %w", path, err)
	}

	reg.Freeze()

	a.logger.Info("schema loaded",
		slog.String("schema", path),
		slog.String("root", def.Name),
		slog.Int("types", reg.Len()),
	)

	return &compiled{root: root, reg: reg, def: def}, nil
}

func (a *app) engine(reg *synth.Registry) *caster.Engine {
	return caster.New(reg,
		caster.WithLogger(a.logger),
		caster.WithMaxDepth(a.cfg.MaxDepth),
	)
}

// typeName names the root definition after the root element: the configured
// root name for JSON and YAML, the global element for XSD.
func typeName(root *schema.Element) string {
	return match.PascalCase(root.Name)
}

func isXML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
