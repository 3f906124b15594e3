package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "locbot-tmp-"

	emptyDocument = "{}\n"
)

// writeFileAtomic replaces filename with data through a temp file in the same
// directory, so readers never observe a half-written document.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

// ensureFile creates filename (and its parent directories) holding an empty
// JSON object when it does not exist yet. Existing files are left untouched.
func ensureFile(filename string, perm os.FileMode) (created bool, err error) {
	if _, err := os.Stat(filename); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return false, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := writeFileAtomic(filename, []byte(emptyDocument), perm); err != nil {
		return false, err
	}
	return true, nil
}
