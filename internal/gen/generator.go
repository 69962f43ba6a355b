package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"maps"
	"slices"
	"text/template"

	"schema-typer/internal/synth"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables doc comments on generated types and enum fields.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "model",
		OutputDir:        "./generated",
		GenerateComments: true,
	}
}

// Generator renders type definitions as Go source. Definition names that
// are not Go identifiers are PascalCased and numbered on collision.
// A Generator must not be shared between goroutines.
type Generator struct {
	config GeneratorConfig
	names  map[string]string // definition name -> Go identifier
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file relative to the output directory.
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// typesFilename names the file GenerateFile produces.
const typesFilename = "types.go"

type fileData struct {
	PackageName string
	Imports     []string
	Structs     []string
}

var fileTemplate = template.Must(template.New("types").Parse(`// Code generated by schema-typer. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{range .Structs}}
{{.}}
{{end}}`))

// GenerateFile renders every definition of reg into one formatted file of
// package pkg, referenced definitions before the ones referring to them.
// An empty pkg uses the configured package name.
func (g *Generator) GenerateFile(pkg string, reg *synth.Registry) (*GeneratedFile, error) {
	if pkg == "" {
		pkg = g.config.PackageName
	}

	defs := reg.Definitions()
	g.names = identifiers(reg.Names())

	order, err := dependencyOrder(defs)
	if err != nil {
		return nil, fmt.Errorf("ordering definitions: %w", err)
	}

	imports := make(map[string]struct{})
	data := &fileData{PackageName: pkg}

	for _, def := range order {
		src, err := g.GenerateStruct(def, imports)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", def.Name, err)
		}

		data.Structs = append(data.Structs, src)
	}

	data.Imports = slices.Sorted(maps.Keys(imports))

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, typesFilename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: typesFilename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: typesFilename,
		Content:  formatted,
	}, nil
}

// ErrNilDefinition is returned by GenerateStruct for a nil definition.
var ErrNilDefinition = errors.New("type definition is nil")
