// Package registry holds the static, per-form field configuration consumed by
// the state engine. A Registry maps field names to their passthrough render
// attributes, declared control kind, and validation rules. It is built once,
// never mutated, and keeps fields in declaration order so adapters can render
// deterministically.
//
// Control kinds are declared per field. When a spec omits the control, the
// registry resolves it once at construction from the passthrough attributes
// (`type: checkbox`, `type: radio`, `options`, `widget`), so event handling
// never has to inspect payloads to decide how a value should be read.
//
// Pattern rules are compiled during construction; an invalid expression is a
// configuration error returned by New instead of a failure at first input.
package registry
