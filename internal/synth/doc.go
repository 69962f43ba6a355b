// Package synth synthesizes named type definitions from schema elements
// and keeps them in a Registry.
//
// Every complex node of a schema tree yields exactly one TypeDefinition;
// structurally equal nodes at different positions are not merged. Leaf tags
// map onto primitive kinds, unknown tags onto Any. A complex node reappearing
// in its own expansion chain fails with a *CyclicSchemaError.
//
// Registries are append-then-freeze: a single writer defines types, calls
// Freeze, and from then on any number of goroutines may read.
package synth
