// Package normalize builds canonical_code and the name/alias mappings from a
// parsed source unit, and reverses the process to reconstruct a human-facing
// rendering from a stored object plus overlay.
//
// It is the orchestration layer: all tree-sitter-specific work lives in
// internal/lang, and normalize composes those primitives into the pool's
// data-model operations.
package normalize
