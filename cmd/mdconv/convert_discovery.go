package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdconv"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoFiles            = errors.New("no convertible files found")
	ErrUnknownExtension   = errors.New("cannot infer direction from file extension")
	ErrOutputConflict     = errors.New("output would overwrite an input file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// stdinPath is the input argument that reads from standard input.
const stdinPath = "-"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Direction  mdconv.Direction
}

// directionForPath infers the direction from a file extension.
func directionForPath(path string) (mdconv.Direction, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return mdconv.HTMLToMarkdown, true
	case ".md", ".markdown":
		return mdconv.MarkdownToHTML, true
	}
	return "", false
}

// outputExtension returns the extension written for a direction.
func outputExtension(d mdconv.Direction) string {
	if d == mdconv.HTMLToMarkdown {
		return ".md"
	}
	return ".html"
}

// isOutputFile reports whether output names a file of the target format
// rather than a directory.
func isOutputFile(output string, d mdconv.Direction) bool {
	ext := strings.ToLower(filepath.Ext(output))
	if d == mdconv.HTMLToMarkdown {
		return ext == ".md" || ext == ".markdown"
	}
	return ext == ".html" || ext == ".htm"
}

// discoverFiles finds the files to convert under inputPath.
// With forced set, a single file is converted regardless of its extension
// and a directory walk keeps only files that convert in that direction.
func discoverFiles(inputPath, output string, forced mdconv.Direction) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		d := forced
		if d == "" {
			var ok bool
			if d, ok = directionForPath(inputPath); !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, inputPath)
			}
		}
		files := []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, output, "", d),
			Direction:  d,
		}}
		return files, checkConflicts(files)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if entry.IsDir() {
			return nil
		}
		d, ok := directionForPath(path)
		if !ok || (forced != "" && d != forced) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, output, inputPath, d),
			Direction:  d,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, checkConflicts(files)
}

// resolveOutputPath determines the output path for one input file.
// Directory walks keep the input's relative layout under output.
func resolveOutputPath(inputPath, output, baseInputDir string, d mdconv.Direction) string {
	ext := outputExtension(d)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base+ext)
	}

	if baseInputDir == "" && isOutputFile(output, d) {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), base+ext)
		}
	}

	return filepath.Join(output, base+ext)
}

// checkConflicts rejects batches where an output path is also an input,
// as when a directory holds both notes.md and notes.html.
func checkConflicts(files []FileToConvert) error {
	inputs := make(map[string]bool, len(files))
	for _, f := range files {
		inputs[filepath.Clean(f.InputPath)] = true
	}
	for _, f := range files {
		if inputs[filepath.Clean(f.OutputPath)] {
			return fmt.Errorf("%w: %s -> %s", ErrOutputConflict, f.InputPath, f.OutputPath)
		}
	}
	return nil
}

// previewPath returns the PNG path for an output file.
func previewPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".png"
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdconv.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdconv.MaxPoolSize)
	}
	return nil
}
