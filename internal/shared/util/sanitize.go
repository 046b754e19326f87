package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for names that are empty or attempt
// path traversal.
var ErrInvalidFileName = errors.New("invalid file name")

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName makes an uploaded image name safe to embed in a
// storage key. Traversal sequences are rejected outright; separators
// are flattened so the name stays a single path segment.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := fileNameReplacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
