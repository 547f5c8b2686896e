// Package objectstore implements the content-addressed directory layout of
// the pool and the atomic file discipline used to populate it.
//
// Layout, for function hash h and overlay hash m:
//
//	<root>/pool/<h[0:2]>/<h[2:]>/object.json
//	<root>/pool/<h[0:2]>/<h[2:]>/<lang>/<m[0:2]>/<m[2:]>/mapping.json
//
// Every file is written by creating a uniquely named temporary sibling,
// syncing it, and renaming it over the final path, so readers observe either
// the complete prior file or the complete new file, never a partial one.
// Because content is addressed by hash, a pre-existing file at the final path
// is left untouched.
package objectstore
