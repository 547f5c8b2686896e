package objectstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// writeAttempts bounds retries of a tentative temp-file write before the
// I/O error propagates to the caller.
const writeAttempts = 3

// WriteFileAtomic writes data to path using the temp-then-rename discipline.
// A file already present at path is left unchanged: content is addressed by
// hash, so any existing file holds identical logical bytes.
func WriteFileAtomic(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directories for %s: %w", path, err)
	}

	var lastErr error
	for attempt := 0; attempt < writeAttempts; attempt++ {
		if err := writeOnce(path, data); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("write %s: %w", path, lastErr)
}

// writeOnce performs a single temp-write-fsync-rename cycle. The temporary
// sibling carries a UUID suffix so concurrent writers of the same path never
// collide before the rename.
func writeOnce(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.Must(uuid.NewV7()).String())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
