// Package index maintains a SQLite side index over the pool's directory
// layout, so existence and listing queries answer from one table scan instead
// of a directory walk.
//
// The index is advisory. The filesystem is authoritative: the index is
// rebuilt from a directory walk when the pool opens, rows are upserted after
// every successful write, and deleting the database file loses nothing.
package index
