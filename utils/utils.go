// Package utils provides file helpers shared by the ledger client
// executables.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes buf to a file whose path is indicated by filename.
// It refuses to overwrite an existing file.
func WriteFile(filename string, buf []byte, perm os.FileMode) error {
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("Can't write file. File '%s' already exists\n",
			filename)
	}
	return os.WriteFile(filename, buf, perm)
}

// ResolvePath returns the absolute path of file.
// This will use other as a base path if file is just a file name.
func ResolvePath(file, other string) string {
	if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(other), file)
	}
	return file
}
