// Package loader normalizes JSON Schema, YAML encoded JSON Schema and XSD
// documents into the schema model.
//
// Unknown type names never fail a load: they resolve to string and are
// reported as unsupported_type_tag warnings. Malformed documents fail with a
// *SchemaFormatError.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"schema-typer/internal/diagnostic"
	"schema-typer/internal/schema"
)

// DefaultRootName names the root element of JSON and YAML schemas.
const DefaultRootName = "Root"

// ErrSchemaFormat is matched by every SchemaFormatError.
var ErrSchemaFormat = errors.New("malformed schema")

// ErrUnknownFormat is returned by LoadFile for unrecognized file extensions.
var ErrUnknownFormat = errors.New("unknown schema format")

// SchemaFormatError reports a schema document that cannot be normalized.
type SchemaFormatError struct {
	Format string // json, yaml or xsd
	Path   string // location inside the document, empty for the document itself
	Err    error
}

func (e *SchemaFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s schema: %v", e.Format, e.Err)
	}

	return fmt.Sprintf("%s schema at %s: %v", e.Format, e.Path, e.Err)
}

func (e *SchemaFormatError) Unwrap() []error {
	return []error{ErrSchemaFormat, e.Err}
}

// Loader converts schema documents into schema elements. A Loader keeps the
// diagnostics of its last call and must not be shared between goroutines.
type Loader struct {
	logger   *slog.Logger
	rootName string
	diags    diagnostic.Diagnostics
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger normalization steps are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithRootName overrides DefaultRootName. XSD roots are always named after
// their global element.
func WithRootName(name string) Option {
	return func(l *Loader) {
		l.rootName = name
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger:   slog.Default(),
		rootName: DefaultRootName,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Diagnostics returns the findings of the last load.
func (l *Loader) Diagnostics() diagnostic.Diagnostics {
	return l.diags
}

// LoadFile reads a schema file and normalizes it with the normalizer picked
// by the file extension: .json, .yaml/.yml or .xsd.
func (l *Loader) LoadFile(path string) (*schema.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return l.JSONSchema(data)
	case ".yaml", ".yml":
		return l.YAMLSchema(data)
	case ".xsd":
		return l.XSD(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile loads a schema file with a Loader built from opts.
func LoadFile(path string, opts ...Option) (*schema.Element, error) {
	return New(opts...).LoadFile(path)
}

func (l *Loader) reset() {
	l.diags = diagnostic.Diagnostics{}
}

func (l *Loader) unsupported(format, typeName, path string) {
	l.logger.Warn("unsupported type resolved to string",
		slog.String("format", format),
		slog.String("type", typeName),
		slog.String("path", path),
	)

	l.diags.AddWarning(diagnostic.CodeUnsupportedTypeTag,
		fmt.Sprintf("%s type %q resolved to %s", format, typeName, schema.TagString), "", path)
}
