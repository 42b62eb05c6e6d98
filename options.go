package mdconv

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path, or CSS content
	resolvedStyle string
	assetPath     string
	html          *HTMLOptions
	markdown      *MarkdownOptions
	preview       *PreviewSettings
}

// defaultTimeout bounds a single preview render.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the preview page-load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdconv: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithHTMLOptions sets the HTML to Markdown options.
func WithHTMLOptions(opts HTMLOptions) Option {
	return func(c *Converter) {
		c.cfg.html = &opts
	}
}

// WithMarkdownOptions sets the Markdown to HTML options.
func WithMarkdownOptions(opts MarkdownOptions) Option {
	return func(c *Converter) {
		c.cfg.markdown = &opts
	}
}

// WithStyle sets the stylesheet for standalone documents.
// Accepts a style name ("default", "plain"), a file path, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory of custom styles ({path}/styles/{name}.css)
// that take precedence over the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithPreviewSettings sets the screenshot viewport.
func WithPreviewSettings(settings PreviewSettings) Option {
	return func(c *Converter) {
		c.cfg.preview = &settings
	}
}
