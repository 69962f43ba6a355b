// Package main provides the CLI entrypoint for schema-typer.
//
// schema-typer turns JSON Schema, YAML and XSD documents into runtime types:
//   - types prints the synthesized type registry as text, YAML or Go source
//   - object builds a default valued object and optionally populates it from JSON
//   - materialize coerces a JSON or XML document into a typed instance
//   - config prints the effective configuration
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
