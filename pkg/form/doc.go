// Package form implements the field state engine: it owns the values, errors,
// and touched status of one form instance and applies change, blur,
// revalidate, and submit transitions against a registry.
//
// Every transition computes a complete new State and only then commits it, so
// the change notifier and the query API never observe a partial update. The
// engine is synchronous and has a single owner; it does not start goroutines
// and is not safe for concurrent use.
//
// Touched status progresses forward only:
//
//	Untouched --change--> Modified --blur--> Touched
//
// Fields seeded with a non-empty default start as Touched so their errors are
// visible immediately. Controls declared as composite have no native tag and
// move straight to Touched on blur.
package form
