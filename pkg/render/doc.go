// Package render is the boundary between the form state engine and the
// adapters that present it. Build turns a form into a View: a flat,
// ordered description of every registered field with its current value,
// touched-gated error, and the passthrough attributes merged with the
// required/maxlength constraints. Renderers consume Views; they never walk UI
// trees or reach into the engine's state.
package render
