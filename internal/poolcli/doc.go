// Package poolcli is the command-line surface over the pool's public
// operations. Every command parses flags, opens the pool, calls exactly one
// pool.Pool method, and formats the result; no pool semantics live here.
package poolcli
