// Package lang parses a single source unit (a bounded block of Python-dialect
// source holding zero or more import statements and exactly one function
// definition) into a concrete syntax tree, and renders such a tree back to
// deterministic text.
//
// Parsing is done with tree-sitter's Python grammar. The package never builds
// a separate typed AST: normalize and denormalize both work directly against
// the tree-sitter concrete syntax tree, because the behavior that matters
// here (which identifiers count as user-defined names, which import shapes
// are pool imports) is naturally expressed as predicates over concrete node
// shapes.
package lang
