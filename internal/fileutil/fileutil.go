// Package fileutil holds the file helpers shared by the converter, the config
// loader and the CLI.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tempPagePattern names preview pages in the temp directory.
const tempPagePattern = "mdconv-preview-*.html"

// WriteTempPage writes an HTML page to a new file in the temp directory so a
// browser can load it by path. cleanup removes the file and may be called
// more than once.
func WriteTempPage(page string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", tempPagePattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating preview page: %w", err)
	}

	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.WriteString(page)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing preview page: %w", err)
	}

	return path, cleanup, nil
}

// FileExists returns true if the path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath returns true if s contains a path separator, so "team" is a
// config or style name and "./team.yaml" a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// StyleKind says how a --style value is read.
type StyleKind int

const (
	StyleName   StyleKind = iota // built-in or asset-path stylesheet
	StyleFile                    // CSS file on disk
	StyleInline                  // CSS text
)

// ClassifyStyle decides whether s is inline CSS (it has a brace), a file
// (a separator or a .css extension) or a style name.
func ClassifyStyle(s string) StyleKind {
	switch {
	case strings.Contains(s, "{"):
		return StyleInline
	case IsFilePath(s), strings.EqualFold(filepath.Ext(s), ".css"):
		return StyleFile
	default:
		return StyleName
	}
}
