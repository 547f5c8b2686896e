package objectstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadObject returns the raw bytes of a function's object.json. The error is
// os.ErrNotExist-compatible when the function is absent.
func ReadObject(root, functionHash string) ([]byte, error) {
	return os.ReadFile(ObjectPath(root, functionHash))
}

// ReadMapping returns the raw bytes of one overlay's mapping.json.
func ReadMapping(root, functionHash, language, overlayHash string) ([]byte, error) {
	return os.ReadFile(MappingPath(root, functionHash, language, overlayHash))
}

// FunctionExists reports whether object.json is present for functionHash.
func FunctionExists(root, functionHash string) (bool, error) {
	_, err := os.Stat(ObjectPath(root, functionHash))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat object: %w", err)
}

// LanguageExists reports whether a language directory is present and
// non-empty under the function's directory.
func LanguageExists(root, functionHash, language string) (bool, error) {
	entries, err := os.ReadDir(filepath.Join(FunctionDir(root, functionHash), language))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read language directory: %w", err)
	}
	return len(entries) > 0, nil
}
