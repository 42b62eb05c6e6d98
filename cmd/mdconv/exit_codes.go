package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdconv"
	"github.com/alnah/go-mdconv/internal/config"
	"github.com/alnah/go-mdconv/internal/fileutil"
	"github.com/alnah/go-mdconv/internal/hints"
)

// Exit codes for the mdconv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Preview browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if isBrowserError(err) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownExtension) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdconv.ErrInvalidDirection) ||
		errors.Is(err, mdconv.ErrInvalidHeadingStyle) ||
		errors.Is(err, mdconv.ErrInvalidCodeBlockStyle) ||
		errors.Is(err, mdconv.ErrInvalidDelimiter) ||
		errors.Is(err, mdconv.ErrInvalidBulletMarker) ||
		errors.Is(err, mdconv.ErrInvalidLinkStyle) ||
		errors.Is(err, mdconv.ErrUnknownElement) ||
		errors.Is(err, mdconv.ErrInvalidHighlightStyle) ||
		errors.Is(err, mdconv.ErrInvalidViewport) ||
		errors.Is(err, mdconv.ErrStyleNotFound) ||
		errors.Is(err, mdconv.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

func isBrowserError(err error) bool {
	return errors.Is(err, mdconv.ErrBrowserConnect) ||
		errors.Is(err, mdconv.ErrPageCreate) ||
		errors.Is(err, mdconv.ErrPageLoad) ||
		errors.Is(err, mdconv.ErrPreviewCapture)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case isBrowserError(err):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		var loadErr *configLoadError
		if errors.As(err, &loadErr) && !fileutil.IsFilePath(loadErr.name) {
			return hints.ForConfigNotFound(config.SearchPaths(loadErr.name))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, mdconv.ErrStyleNotFound):
		return hints.ForStyleNotFound(mdconv.StyleNames())
	case errors.Is(err, ErrUnknownExtension), errors.Is(err, mdconv.ErrInvalidDirection):
		return hints.ForDirection()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
