// Package pool exposes the public operations of the function pool: storing a
// source unit, enumerating and loading its language overlays, reconstructing
// a human-facing rendering, and validating stored content against the hashes
// embedded in its paths.
//
// The pool is a directory tree (internal/objectstore) accelerated by an
// advisory SQLite index (internal/index). Every operation is a synchronous
// call that completes before returning; concurrent operations are safe
// because all writes use the atomic temp-then-rename discipline and all
// content is addressed by hash.
package pool
