package objectstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

var (
	hashPrefixDir = regexp.MustCompile(`^[0-9a-f]{2}$`)
	hashRemainder = regexp.MustCompile(`^[0-9a-f]{62}$`)
)

// ListFunctions enumerates every function hash present under the root by
// walking the two-level fan-out and checking for object.json. Hashes are
// reconstructed from directory names, sorted.
func ListFunctions(root string) ([]string, error) {
	poolDir := filepath.Join(root, PoolDirName)
	prefixes, err := os.ReadDir(poolDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pool directory: %w", err)
	}

	var hashes []string
	for _, prefix := range prefixes {
		if !prefix.IsDir() || !hashPrefixDir.MatchString(prefix.Name()) {
			continue
		}
		remainders, err := os.ReadDir(filepath.Join(poolDir, prefix.Name()))
		if err != nil {
			return nil, fmt.Errorf("read fan-out directory %s: %w", prefix.Name(), err)
		}
		for _, rem := range remainders {
			if !rem.IsDir() || !hashRemainder.MatchString(rem.Name()) {
				continue
			}
			hash := prefix.Name() + rem.Name()
			if ok, err := FunctionExists(root, hash); err != nil {
				return nil, err
			} else if ok {
				hashes = append(hashes, hash)
			}
		}
	}
	sort.Strings(hashes)
	return hashes, nil
}

// ListLanguages enumerates the language directories present and non-empty
// under a function's directory, sorted.
func ListLanguages(root, functionHash string) ([]string, error) {
	entries, err := os.ReadDir(FunctionDir(root, functionHash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read function directory: %w", err)
	}

	var languages []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		nonEmpty, err := LanguageExists(root, functionHash, entry.Name())
		if err != nil {
			return nil, err
		}
		if nonEmpty {
			languages = append(languages, entry.Name())
		}
	}
	sort.Strings(languages)
	return languages, nil
}

// ListOverlayHashes enumerates the overlay hashes stored for one language of
// one function. Each hash is reconstructed from its two-level directory path,
// not recomputed from content; directories without a mapping.json are
// skipped. Hashes are sorted.
func ListOverlayHashes(root, functionHash, language string) ([]string, error) {
	langDir := filepath.Join(FunctionDir(root, functionHash), language)
	prefixes, err := os.ReadDir(langDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read language directory: %w", err)
	}

	var hashes []string
	for _, prefix := range prefixes {
		if !prefix.IsDir() || !hashPrefixDir.MatchString(prefix.Name()) {
			continue
		}
		remainders, err := os.ReadDir(filepath.Join(langDir, prefix.Name()))
		if err != nil {
			return nil, fmt.Errorf("read overlay fan-out directory %s: %w", prefix.Name(), err)
		}
		for _, rem := range remainders {
			if !rem.IsDir() || !hashRemainder.MatchString(rem.Name()) {
				continue
			}
			hash := prefix.Name() + rem.Name()
			if _, err := os.Stat(MappingPath(root, functionHash, language, hash)); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, fmt.Errorf("stat mapping: %w", err)
			}
			hashes = append(hashes, hash)
		}
	}
	sort.Strings(hashes)
	return hashes, nil
}
