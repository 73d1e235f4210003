// Package fsutil provides file system helpers for locating specification
// documents.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// SpecExtensions lists the recognized specification document extensions,
// in the order they are tried when resolving a format by name.
var SpecExtensions = []string{".hcl", ".yml", ".yaml"}

// FindSpecFiles recursively collects every specification document under
// rootPath, in walk order.
func FindSpecFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSpecFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// IsSpecFile reports whether the path has a recognized specification
// document extension.
func IsSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SpecExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
