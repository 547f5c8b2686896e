package objectstore

import "path/filepath"

const (
	// PoolDirName is the directory under the storage root that holds every
	// function, fanned out on the first two hex digits of the hash.
	PoolDirName = "pool"

	// ObjectFileName holds a function's canonical code and metadata.
	ObjectFileName = "object.json"

	// MappingFileName holds one language overlay.
	MappingFileName = "mapping.json"
)

// FunctionDir returns the directory owning functionHash. The hash must
// already be validated as 64-hex-lowercase.
func FunctionDir(root, functionHash string) string {
	return filepath.Join(root, PoolDirName, functionHash[:2], functionHash[2:])
}

// ObjectPath returns the path of a function's object.json.
func ObjectPath(root, functionHash string) string {
	return filepath.Join(FunctionDir(root, functionHash), ObjectFileName)
}

// OverlayDir returns the directory owning one overlay of a function in one
// language.
func OverlayDir(root, functionHash, language, overlayHash string) string {
	return filepath.Join(FunctionDir(root, functionHash), language, overlayHash[:2], overlayHash[2:])
}

// MappingPath returns the path of an overlay's mapping.json.
func MappingPath(root, functionHash, language, overlayHash string) string {
	return filepath.Join(OverlayDir(root, functionHash, language, overlayHash), MappingFileName)
}
