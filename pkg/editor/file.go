// pkg/editor/file.go

package editor

import (
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
)

// ErrNotFound reports a file that does not exist.
var ErrNotFound = cerr.New("file not found")

// ReadFile returns the file content as a string, mapping a missing file to
// ErrNotFound.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", cerr.Wrapf(ErrNotFound, "%s", path)
		}
		return "", cerr.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

// WriteFile writes content to an existing location.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return cerr.Wrapf(err, "write %s", path)
	}
	return nil
}

// WriteFileMkdir writes content, creating parent directories as needed.
func WriteFileMkdir(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return cerr.Wrapf(err, "create parent directories for %s", path)
	}
	return WriteFile(path, content)
}
