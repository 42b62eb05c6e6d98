package mdconv

import (
	"errors"

	"github.com/alnah/go-mdconv/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidDirection   = errors.New("invalid conversion direction")
	ErrHTMLConversion     = pipeline.ErrHTMLConversion
	ErrMarkdownConversion = pipeline.ErrMarkdownConversion
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrPreviewCapture     = errors.New("preview capture failed")

	// HTML option validation errors.
	ErrInvalidHeadingStyle   = errors.New("invalid heading style")
	ErrInvalidCodeBlockStyle = errors.New("invalid code block style")
	ErrInvalidDelimiter      = errors.New("invalid emphasis delimiter")
	ErrInvalidBulletMarker   = errors.New("invalid bullet list marker")
	ErrInvalidLinkStyle      = errors.New("invalid link style")
	ErrUnknownElement        = errors.New("unknown element")

	// Markdown option validation errors.
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")

	// Preview validation errors.
	ErrInvalidViewport = errors.New("invalid preview viewport")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
