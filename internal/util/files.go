package util

import (
	"io"
	"os"
	"path/filepath"
)

// SaveToFile copies a stream to path, creating parent directories.
func SaveToFile(src io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
