// Package canon implements RFC 8785-flavored canonical JSON serialization
// and the two content hashes derived from it: the function hash (over raw
// canonical source bytes) and the overlay hash (over canonical JSON bytes).
//
// Both hashes are computed on logical content only. Neither is domain
// separated: the hash preimage is exactly the bytes named by the data model,
// nothing more, so that an independent implementation following the same
// rules reproduces the same hash.
package canon
